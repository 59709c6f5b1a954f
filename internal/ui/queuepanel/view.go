package queuepanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tlacroix/aria/internal/track"
	"github.com/tlacroix/aria/internal/ui"
	"github.com/tlacroix/aria/internal/ui/render"
	"github.com/tlacroix/aria/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := m.ListHeight(ui.PanelOverhead)

	header := m.renderHeader(innerWidth)
	separator := render.Separator(innerWidth)
	trackList := m.renderTrackList(innerWidth, listHeight)

	content := header + "\n" + separator + "\n" + trackList

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderHeader(innerWidth int) string {
	currentIdx := m.playingIdx + 1
	if currentIdx < 1 {
		currentIdx = 0
	}
	text := fmt.Sprintf("Queue (%d/%d)", currentIdx, len(m.tracks))
	return headerStyle().Render(render.TruncateAndPad(text, innerWidth))
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	start, _ := m.cursor.VisibleRange(len(m.tracks), listHeight)

	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + start
		if idx >= len(m.tracks) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.tracks[idx], idx, innerWidth))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderTrackLine(t track.Track, idx, width int) string {
	// "▶ " for the playing track
	prefix := "  "
	if idx == m.playingIdx {
		prefix = playingSymbol + " "
	}

	duration := formatDuration(t.Duration)
	durationWidth := lipgloss.Width(duration) + 1

	contentWidth := width - 2 - durationWidth

	// Two columns: title left, artist right
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	title := render.TruncateAndPad(t.DisplayTitle(), titleWidth)
	artist := render.TruncateAndPad(t.Artist, artistWidth)

	line := prefix + title + artist + " " + duration

	return m.trackStyle(idx).Render(line)
}

func (m Model) trackStyle(idx int) lipgloss.Style {
	isCursor := idx == m.cursor.Pos() && m.IsFocused()
	isPlaying := idx == m.playingIdx
	isPlayed := m.playingIdx >= 0 && idx < m.playingIdx

	switch {
	case isCursor && isPlaying:
		return styles.T().S().Cursor.Inherit(styles.T().S().Playing)
	case isCursor:
		return styles.T().S().Cursor
	case isPlaying:
		return styles.T().S().Playing
	case isPlayed:
		return styles.T().S().Subtle
	default:
		return styles.T().S().Base
	}
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
