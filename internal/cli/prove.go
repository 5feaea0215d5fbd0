package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"quest-client/internal/app"
	"quest-client/internal/domain"
)

// NewProveCmd requests a proof for the current aggregate score.
func NewProveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prove",
		Short: "Generate a proof of the current score",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.cfg.RequireVerifier(); err != nil {
				return err
			}

			res, err := rt.service.Prove(cmd.Context())
			switch {
			case errors.Is(err, domain.ErrNetwork):
				return errors.New("error connecting to verification server")
			case err != nil:
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Proved {
				fmt.Fprintln(out, "Score verification failed. Please try again.")
				return nil
			}
			if res.Cached {
				fmt.Fprintf(out, "Score %d is already proved.\n", res.Points)
			} else {
				fmt.Fprintln(out, "Score verified successfully! Your proof is valid.")
			}
			fmt.Fprintf(out, "Verification Result: %s\n", res.Artifact.VerificationResult)
			fmt.Fprintf(out, "VK: %s\n", res.Artifact.VerificationKey)
			fmt.Fprintf(out, "Public Values: %s\n", app.DescribePublicValues(res.Artifact.PublicValues))
			return nil
		},
	}
}
