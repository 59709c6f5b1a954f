package librarybrowser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tlacroix/aria/internal/icons"
	"github.com/tlacroix/aria/internal/ui/cursor"
	"github.com/tlacroix/aria/internal/ui/render"
	"github.com/tlacroix/aria/internal/ui/styles"
)

// View renders the library browser.
func (m Model) View() string {
	if m.Width() == 0 {
		return "Loading..."
	}

	colWidth := m.columnWidth()
	colHeight := m.columnHeight()

	artistCol := m.renderColumn("Artists", m.renderArtistItems(colWidth, colHeight), colWidth, ColumnArtists)
	albumCol := m.renderColumn("Albums", m.renderAlbumItems(colWidth, colHeight), colWidth, ColumnAlbums)
	trackCol := m.renderColumn("Tracks", m.renderTrackItems(colWidth, colHeight), colWidth, ColumnTracks)

	return lipgloss.JoinHorizontal(lipgloss.Top, artistCol, albumCol, trackCol)
}

func (m Model) renderColumn(title string, lines []string, width int, col Column) string {
	t := styles.T()

	borderColor := t.Border
	if m.activeColumn == col && m.IsFocused() {
		borderColor = t.BorderFocus
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	titleLine := render.TruncateAndPad(titleStyle.Render(title), width)

	content := titleLine + "\n" + strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Render(content)
}

func (m Model) styleItem(line string, isCursor, isActive bool) string {
	t := styles.T()

	switch {
	case isCursor && isActive && m.IsFocused():
		return t.S().Cursor.Render(line)
	case isActive:
		return t.S().Base.Render(line)
	default:
		return t.S().Muted.Render(line)
	}
}

func (m Model) renderArtistItems(width, height int) []string {
	return m.renderItems(width, height, m.artistCursor, len(m.artists), ColumnArtists,
		func(idx int) string {
			return icons.FormatArtist(m.artists[idx])
		})
}

func (m Model) renderAlbumItems(width, height int) []string {
	return m.renderItems(width, height, m.albumCursor, len(m.albums), ColumnAlbums,
		func(idx int) string {
			return icons.FormatAlbum(m.albums[idx])
		})
}

func (m Model) renderTrackItems(width, height int) []string {
	return m.renderItems(width, height, m.trackCursor, len(m.tracks), ColumnTracks,
		func(idx int) string {
			t := m.tracks[idx]
			if t.TrackNumber > 0 {
				return fmt.Sprintf("%02d. %s", t.TrackNumber, t.DisplayTitle())
			}
			return t.DisplayTitle()
		})
}

func (m Model) renderItems(width, height int, c cursor.Cursor, count int, col Column, item func(int) string) []string {
	isActive := m.activeColumn == col
	lines := make([]string, height)

	for i := range height {
		idx := i + c.Offset()
		if idx >= count {
			lines[i] = render.EmptyLine(width)
			continue
		}

		isCursor := idx == c.Pos()
		name := render.Truncate(item(idx), width-2)

		prefix := "  "
		if isCursor && isActive {
			prefix = "> "
		}

		lines[i] = m.styleItem(render.Pad(prefix+name, width), isCursor, isActive)
	}

	return lines
}
