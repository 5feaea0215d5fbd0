package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewAnswerCmd saves (or clears) the answer to one quest sub-question.
func NewAnswerCmd(configPath *string) *cobra.Command {
	var (
		sub      int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "answer <quest-id> [text...]",
		Short: "Save an answer; it is verified on the next submit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("quest id %q is not a number", args[0])
			}

			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			if clearAll {
				if err := rt.service.ClearAnswers(cmd.Context(), questID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Answers for quest %d cleared\n", questID)
				return nil
			}

			text := strings.Join(args[1:], " ")
			if err := rt.service.SaveAnswer(cmd.Context(), questID, sub-1, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Your answer is saved, don't forget to verify it")
			return nil
		},
	}
	cmd.Flags().IntVar(&sub, "sub", 1, "sub-question number (1-based) for multi-part quests")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "clear every saved answer of the quest")
	return cmd
}
