package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gilead/flashcards/internal/ui/theme"
)

// ProgressBar renders a count against a maximum as a horizontal bar.
type ProgressBar struct {
	Label string
	Count int
	Max   int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, count, max, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Count: count,
		Max:   max,
		Width: width,
	}
}

// Filled returns the number of filled cells in a bar of barWidth.
func (p ProgressBar) Filled(barWidth int) int {
	if p.Max <= 0 || p.Count <= 0 {
		return 0
	}
	filled := p.Count * barWidth / p.Max
	if filled == 0 {
		filled = 1
	}
	if filled > barWidth {
		filled = barWidth
	}
	return filled
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d", p.Count)
	barWidth := p.Width - lipgloss.Width(result) - len(count)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := p.Filled(barWidth)
	result += lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled))
	result += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)

	return result
}
