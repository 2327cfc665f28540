package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	barFilled = lipgloss.NewStyle().Background(lipgloss.Color("#14B8A6"))
	barEmpty  = lipgloss.NewStyle().Background(lipgloss.Color("#334155"))
	barLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// renderBar draws a horizontal progress bar with a trailing percentage.
func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}

	percentWidth := 6 // " 100%"
	barWidth := width - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * percent)

	return barFilled.Render(strings.Repeat(" ", filled)) +
		barEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		barLabel.Render(fmt.Sprintf("  %d%%", int(percent*100)))
}
