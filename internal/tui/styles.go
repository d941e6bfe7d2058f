package tui

import "github.com/charmbracelet/lipgloss"

// themeStyles groups the lipgloss styles that differ between the light and
// dark UI themes.
type themeStyles struct {
	title     lipgloss.Style
	help      lipgloss.Style
	errText   lipgloss.Style
	status    lipgloss.Style
	sidebar   lipgloss.Style
	selected  lipgloss.Style
	userMsg   lipgloss.Style
	assistant lipgloss.Style
}

func stylesFor(theme string) themeStyles {
	if theme == "dark" {
		return themeStyles{
			title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
			help:      lipgloss.NewStyle().Faint(true),
			errText:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			status:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			sidebar:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).PaddingRight(1),
			selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
			userMsg:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
			assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		}
	}

	return themeStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")),
		help:      lipgloss.NewStyle().Faint(true),
		errText:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		sidebar:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).PaddingRight(1),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("90")),
		userMsg:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
	}
}
