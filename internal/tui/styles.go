package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7aa2f7")
	colorMuted  = lipgloss.Color("#565f89")
	colorBg     = lipgloss.Color("#1a1b26")
	colorWarn   = lipgloss.Color("#e0af68")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Underline(true)

	activeHeaderStyle = headerStyle.
				Foreground(colorWarn)

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(colorAccent).
				Foreground(colorBg)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)
