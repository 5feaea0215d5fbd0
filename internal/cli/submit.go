package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"quest-client/internal/app"
	"quest-client/internal/domain"
)

// NewSubmitCmd verifies every saved answer in one batch.
func NewSubmitCmd(configPath *string) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Verify all answers with the verification service",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.cfg.RequireVerifier(); err != nil {
				return err
			}

			var opts app.SubmitOptions
			if !quiet {
				errOut := cmd.ErrOrStderr()
				opts.OnProgress = func(percent float64) {
					fmt.Fprintf(errOut, "\rVerifying answers... %3.0f%%", percent)
				}
			}

			result, err := rt.service.Submit(cmd.Context(), opts)
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			switch {
			case errors.Is(err, domain.ErrNetwork):
				return errors.New("an error occurred while submitting answers, please try again later")
			case err != nil:
				return err
			}
			printSubmitResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

func printSubmitResult(w io.Writer, result app.SubmitResult) {
	fmt.Fprintf(w, "Congratulations! You've earned %d points! Check the status of each quest.\n", result.Score.Total)
	for _, status := range result.Statuses {
		msg := status.Message
		if msg != "" {
			msg = " - " + msg
		}
		fmt.Fprintf(w, "  quest %d: %s (%d points)%s\n", status.QuestID, statusLabel(status), status.Points, msg)
	}
	if result.ProofInvalidated {
		fmt.Fprintln(w, "Your score changed; any previous proof was discarded.")
	}
}
