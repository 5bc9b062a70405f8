package styles

import (
	"github.com/charmbracelet/lipgloss"

	"roadtrack/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Status colors
	StatusNotStarted = lipgloss.Color("#F44336")
	StatusInProgress = lipgloss.Color("#FFC107")
	StatusCompleted  = lipgloss.Color("#4CAF50")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Topic list
	TopicTitle = lipgloss.NewStyle().
			Bold(true)

	TopicSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	TopicNote = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Summary counters
	StatLabel = lipgloss.NewStyle().
			Foreground(Muted)

	StatValue = lipgloss.NewStyle().
			Bold(true)

	// Error banner
	Banner = lipgloss.NewStyle().
		Background(Error).
		Foreground(White).
		Bold(true).
		Padding(0, 1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Resource links
	Link = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60A5FA")). // Blue
		Underline(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// StatusColor returns the color for a progress status
func StatusColor(status domain.Status) lipgloss.Color {
	switch status {
	case domain.StatusNotStarted:
		return StatusNotStarted
	case domain.StatusInProgress:
		return StatusInProgress
	case domain.StatusCompleted:
		return StatusCompleted
	default:
		return Muted
	}
}

// StatusBadge renders a status label in its color
func StatusBadge(status domain.Status) string {
	return lipgloss.NewStyle().
		Foreground(StatusColor(status)).
		Bold(true).
		Render(status.Label())
}

// StatusButton renders a status choice, filled when active
func StatusButton(status domain.Status, active bool) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(StatusColor(status)).
		Padding(0, 1)
	if active {
		style = style.Background(StatusColor(status)).Foreground(White).Bold(true)
	} else {
		style = style.Foreground(StatusColor(status))
	}
	return style.Render(status.Label())
}

// ProgressColor returns the bar color for a completion percentage
func ProgressColor(percent int) lipgloss.Color {
	switch {
	case percent >= 100:
		return StatusCompleted
	case percent >= 50:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
