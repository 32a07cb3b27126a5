package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for dashboard elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	TallyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	RateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
