package storefront

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	name     lipgloss.Style
	detail   lipgloss.Style
	meta     lipgloss.Style
	price    lipgloss.Style
	stockOK  lipgloss.Style
	stockLow lipgloss.Style
	stockOut lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	label    lipgloss.Style
	total    lipgloss.Style
	warning  lipgloss.Style
	admin    lipgloss.Style
	link     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		price:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		stockOK:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		stockLow: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		stockOut: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		total:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		admin:    lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
		link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("69")),
	}
}
