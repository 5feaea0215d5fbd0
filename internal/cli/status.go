package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"quest-client/internal/app"
	"quest-client/internal/domain"
)

// NewStatusCmd prints every quest with its answers and reconciled status.
func NewStatusCmd(configPath *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show quests, answers, verification status and score",
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
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func printSnapshot(w io.Writer, snap app.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "QUEST\tTITLE\tSTATUS\tPOINTS\tMESSAGE")
	for _, view := range snap.Quests {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			view.Quest.ID, view.Quest.Title, statusLabel(view.Status), view.Status.Points, view.Status.Message)
		for i, answer := range view.Answers {
			label := "answer"
			if view.Quest.MultiPart() {
				label = fmt.Sprintf("sub %d (%s)", i+1, subVerdict(view.Status, i))
			}
			fmt.Fprintf(tw, "\t  %s\t%s\t\t\n", label, orDash(answer))
		}
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nTotal points: %d\n", snap.Total)
	fmt.Fprintf(w, "Reward: %s\n", snap.Tier.Title)
	if snap.Proof != nil {
		fmt.Fprintf(w, "Verification Result: %s\n", snap.Proof.Artifact.VerificationResult)
		fmt.Fprintf(w, "VK: %s\n", snap.Proof.Artifact.VerificationKey)
		fmt.Fprintf(w, "Public Values: %s\n", snap.Proof.Decoded)
	}
}

func statusLabel(status domain.QuestStatus) string {
	switch status.State {
	case domain.StateCompleted:
		return "Completed"
	case domain.StateFailed:
		return "Failed"
	case domain.StatePartial:
		return "Partially proved"
	default:
		return "-"
	}
}

func subVerdict(status domain.QuestStatus, i int) string {
	if i < len(status.SubVerdicts) {
		return status.SubVerdicts[i].String()
	}
	return domain.VerdictUnknown.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
