package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tlacroix/aria/internal/ui/styles"
)

const playingSymbol = "▶" // ▶

func headerStyle() lipgloss.Style {
	return styles.T().S().Title
}
