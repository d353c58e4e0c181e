// Package cli renders engine results for a terminal.
package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(14)

	okBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("10")).
		Padding(0, 1)

	blockedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("9")).
			Padding(0, 1)

	blockerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	actionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	priorityStyles = map[string]lipgloss.Style{
		"critical": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		"high":     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"normal":   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		"low":      dimStyle,
	}

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
