package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Question and answer boxes
var (
	Question = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 2)

	Answer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 2)
)

// Rating buttons
var (
	Again = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Good = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Easy = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
)

// Review status
var (
	StatusNew = lipgloss.NewStyle().
			Foreground(Primary)

	StatusDue = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	StatusNotDue = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Rating returns the style for a rating button label.
func Rating(label string) lipgloss.Style {
	switch label {
	case "again":
		return Again
	case "easy":
		return Easy
	default:
		return Good
	}
}

// Status returns the style for a review status.
func Status(status string) lipgloss.Style {
	switch status {
	case "due":
		return StatusDue
	case "new":
		return StatusNew
	default:
		return StatusNotDue
	}
}
