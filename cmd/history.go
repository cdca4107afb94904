package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
	"github.com/eduardo5010/study-cycle-sub001/internal/ui/theme"
)

// historyEntry merges assessments and adjustments into one timeline.
type historyEntry struct {
	Sequence int64  `json:"sequence"`
	Time     string `json:"time"`
	Kind     string `json:"kind"`
	Level    string `json:"level"`
	Detail   string `json:"detail"`
}

var historyCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "Show a learner's assessments and difficulty adjustments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID := args[0]
		limit, _ := cmd.Flags().GetInt("limit")

		b, events, err := openEvents(ctx, cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		opts := store.QueryOpts{UserID: userID, Limit: limit}
		assessments, err := events.QueryAssessmentEvents(ctx, opts)
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		adjustments, err := events.QueryAdjustmentEvents(ctx, opts)
		if err != nil {
			return fmt.Errorf("query adjustments: %w", err)
		}

		entries := mergeHistory(assessments, adjustments)
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No history for "+userID+"."))
			return nil
		}
		for _, e := range entries {
			level := e.Level
			if l, err := difficulty.ParseLevel(e.Level); err == nil {
				level = theme.Level(l)
			}
			fmt.Fprintf(out, "%s  %-10s  %s  %s\n",
				theme.Hint.Render(e.Time), e.Kind, level, theme.Body.Render(e.Detail))
		}
		return nil
	},
}

// mergeHistory interleaves both event kinds, most recent first.
func mergeHistory(assessments []store.AssessmentEvent, adjustments []store.AdjustmentEvent) []historyEntry {
	entries := make([]historyEntry, 0, len(assessments)+len(adjustments))
	for _, a := range assessments {
		entries = append(entries, historyEntry{
			Sequence: a.Sequence,
			Time:     a.Timestamp.Local().Format("2006-01-02 15:04:05"),
			Kind:     "assessed",
			Level:    a.BaselineDifficulty,
			Detail: fmt.Sprintf("style %s, attention %.1f min, challenge %.1f",
				a.LearningStyle, a.AttentionSpan, a.PreferredChallenge),
		})
	}
	for _, a := range adjustments {
		entries = append(entries, historyEntry{
			Sequence: a.Sequence,
			Time:     a.Timestamp.Local().Format("2006-01-02 15:04:05"),
			Kind:     "adjusted",
			Level:    a.Level,
			Detail: fmt.Sprintf("zone %s, %.0f%% of %d, %s",
				a.Zone, a.Performance*100, a.Answered, a.Reason),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence > entries[j].Sequence })
	return entries
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Max entries to show (0 = all)")
}
