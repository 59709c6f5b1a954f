package styles

import "github.com/charmbracelet/lipgloss"

var (
	panelBlurred = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(defaultTheme.Border)

	panelFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(defaultTheme.BorderFocus)
)

// PanelStyle returns the bordered panel style for the given focus state.
func PanelStyle(focused bool) lipgloss.Style {
	if focused {
		return panelFocused
	}
	return panelBlurred
}
