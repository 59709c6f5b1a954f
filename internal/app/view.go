package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tlacroix/aria/internal/ui/playerbar"
	"github.com/tlacroix/aria/internal/ui/render"
	"github.com/tlacroix/aria/internal/ui/styles"
)

// View renders the whole application.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.browser.View(), m.queuePanel.View())

	bar := playerbar.Render(m.playerBarState(), m.width)
	if bar == "" {
		// Keep the layout stable while stopped.
		bar = m.renderIdleBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left, panels, bar, m.statusLine())
}

func (m Model) renderIdleBar() string {
	t := styles.T()
	title := styles.ApplyBoldGradient("aria", t.Primary, t.Secondary)
	hint := t.S().Subtle.Render("enter play · space pause · tab queue · u update · q quit")
	content := render.Row(title, hint, max(m.width-6, 0))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(m.width - 2).
		Render(content)
}

func (m Model) playerBarState() playerbar.State {
	return playerbar.NewState(
		m.ctl.State(),
		m.ctl.CurrentTrack(),
		m.ctl.Position(),
		m.ctl.Duration(),
	)
}

func (m Model) statusLine() string {
	if m.status == "" {
		return render.EmptyLine(m.width)
	}
	style := styles.T().S().Warning
	if m.scanning {
		style = styles.T().S().Muted
	}
	return style.Render(render.TruncateAndPad(m.status, m.width))
}
