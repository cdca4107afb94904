package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/content"
	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/profile"
	"github.com/eduardo5010/study-cycle-sub001/internal/ui/components"
	"github.com/eduardo5010/study-cycle-sub001/internal/ui/theme"
)

const meterWidth = 20

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderProfile(p *profile.Profile) string {
	rows := []string{
		theme.Title.Render("Profile " + p.UserID),
		components.Field("Baseline", theme.Level(p.BaselineDifficulty)),
		components.Field("Learning style", string(p.LearningStyle)),
		components.Field("Attention span", fmt.Sprintf("%.1f min", p.AttentionSpan)),
		components.Field("Preferred challenge", fmt.Sprintf("%.1f", p.PreferredChallenge)),
		theme.Label.Render("Load tolerance") + components.NewMeter(p.CognitiveLoadTolerance, profile.MaxLoadTolerance, meterWidth).View(),
		components.Field("Fatigue", fmt.Sprintf("%.0f", p.FatigueLevel)),
		components.Field("Motivation", fmt.Sprintf("%.0f", p.MotivationLevel)),
		components.Field("Last assessment", p.LastAssessment.Local().Format("2006-01-02 15:04:05")),
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderDecision(userID string, d difficulty.Decision) string {
	rows := []string{
		theme.Title.Render("Next difficulty for " + userID),
		components.Field("Level", theme.Level(d.Level)),
		components.Field("Flow zone", theme.Level(d.Zone)),
		components.Field("Performance", fmt.Sprintf("%.0f%% of %d answered", d.Performance*100, d.Answered)),
		components.Field("Reason", d.Reason),
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderContent(ac content.AdaptiveContent) string {
	var b strings.Builder

	header := []string{
		theme.Title.Render("Adaptive content " + ac.ID.String()),
		components.Field("Base difficulty", theme.Level(ac.BaseDifficulty)),
		components.Field("Context", string(ac.Context)),
		components.Field("Estimated time", fmt.Sprintf("%ds", ac.EstimatedTime)),
		theme.Label.Render("Cognitive demand") + components.NewMeter(ac.CognitiveDemand, content.MaxDemand, meterWidth).View(),
	}
	b.WriteString(theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, header...)))
	b.WriteString("\n")

	if len(ac.Hints) > 0 {
		b.WriteString(theme.Title.Render("Hints") + "\n")
		for _, h := range ac.Hints {
			b.WriteString(theme.Hint.Render("  • "+h) + "\n")
		}
	}

	for _, v := range ac.Variations {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  %s\n",
			theme.Level(v.Level),
			theme.Hint.Render(fmt.Sprintf("×%.1f, ~%ds", v.TimeMultiplier, v.EstimatedTime(ac.EstimatedTime))))
		b.WriteString(theme.Body.Render(formatContent(v.Content)) + "\n")
		for _, h := range v.Hints {
			b.WriteString(theme.Hint.Render("  • "+h) + "\n")
		}
	}
	return b.String()
}

// formatContent prints strings as-is and anything else as compact JSON.
func formatContent(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
