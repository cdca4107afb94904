package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

// levelColors runs cool to hot across the difficulty scale.
var levelColors = [difficulty.NumLevels]lipgloss.Style{
	difficulty.VeryEasy:        lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")),
	difficulty.Easy:            lipgloss.NewStyle().Foreground(Secondary),
	difficulty.Optimal:         lipgloss.NewStyle().Foreground(Success),
	difficulty.Challenging:     lipgloss.NewStyle().Foreground(Accent),
	difficulty.VeryChallenging: lipgloss.NewStyle().Foreground(Error),
}

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(20)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warn = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Containers
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	MeterFilled = lipgloss.NewStyle().
			Background(Secondary)

	MeterEmpty = lipgloss.NewStyle().
			Background(Border)
)

// Level renders a difficulty level in its color, bold.
func Level(l difficulty.Level) string {
	if !l.Valid() {
		return Warn.Render(l.String())
	}
	return levelColors[l].Bold(true).Render(l.String())
}
