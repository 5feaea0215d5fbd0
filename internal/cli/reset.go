package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCmd clears every answer, status, the score and the proof.
func NewResetCmd(configPath *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all answers and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset removes all answers and progress; pass --yes to confirm")
			}
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.service.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All answers have been cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing all progress")
	return cmd
}
