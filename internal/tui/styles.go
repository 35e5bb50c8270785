package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("28")).
			Foreground(lipgloss.Color("15"))

	buttonDisabledStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("250"))

	frameStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

// messageLine renders an operation message in red or green, mirroring the
// success/error styling of the forms.
func messageLine(message string, failed bool) string {
	if message == "" {
		return ""
	}
	if failed {
		return errorStyle.Render(message)
	}
	return successStyle.Render(message)
}
