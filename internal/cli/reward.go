package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"quest-client/internal/app"
)

// NewRewardCmd shows the reward tier for the current score.
func NewRewardCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reward",
		Short: "Show your reward tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			snap, err := rt.service.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n", snap.Tier.Title, snap.Tier.Message)
			for _, threshold := range app.Thresholds() {
				marker := " "
				if snap.Total >= threshold {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %3d\n", marker, threshold)
			}
			fmt.Fprintf(out, "\nTotal points: %d\n", snap.Total)
			return nil
		},
	}
}
