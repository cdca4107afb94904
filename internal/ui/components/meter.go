package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eduardo5010/study-cycle-sub001/internal/ui/theme"
)

// Meter is a horizontal bar for a value on a fixed scale, e.g. cognitive
// demand out of 10.
type Meter struct {
	Value float64
	Max   float64
	Width int
}

// NewMeter creates a meter Width cells wide.
func NewMeter(value, max float64, width int) Meter {
	return Meter{Value: value, Max: max, Width: width}
}

// Filled returns how many cells are filled.
func (m Meter) Filled() int {
	width := max(m.Width, 4)
	if m.Max <= 0 {
		return 0
	}
	n := int(float64(width) * m.Value / m.Max)
	return min(max(n, 0), width)
}

// View renders the bar followed by the value.
func (m Meter) View() string {
	width := max(m.Width, 4)
	filled := m.Filled()

	bar := theme.MeterFilled.Render(strings.Repeat(" ", filled)) +
		theme.MeterEmpty.Render(strings.Repeat(" ", width-filled))
	value := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %.1f/%g", m.Value, m.Max))
	return bar + value
}

// Field renders a "label  value" row.
func Field(label, value string) string {
	return theme.Label.Render(label) + theme.Body.Render(value)
}
