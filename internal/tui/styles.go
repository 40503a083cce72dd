package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent   = lipgloss.Color("63")
	muted    = lipgloss.Color("240")
	warning  = lipgloss.Color("214")
	disabled = lipgloss.Color("238")
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	input    lipgloss.Style
	trigger  lipgloss.Style
	inactive lipgloss.Style
	output   lipgloss.Style
	notice   lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(accent),
		label: lipgloss.NewStyle().Foreground(muted),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		trigger: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(accent).
			Padding(0, 2),
		inactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(disabled).
			Padding(0, 2),
		output: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		notice: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(warning).
			Foreground(warning).
			Padding(0, 2),
		help: lipgloss.NewStyle().Foreground(muted),
	}
}
