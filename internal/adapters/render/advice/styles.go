package advice

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	persona   lipgloss.Style
	initials  lipgloss.Style
	subtitle  lipgloss.Style
	body      lipgloss.Style
	loading   lipgloss.Style
	succeeded lipgloss.Style
	failed    lipgloss.Style
	awaiting  lipgloss.Style
	guidance  lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		persona:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		initials:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("153")).Padding(0, 1),
		subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		body:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		loading:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		succeeded: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		failed:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		awaiting:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		guidance:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).PaddingLeft(2),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
