package librarybrowser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlacroix/aria/internal/track"
)

// PlayTracksMsg asks the app to replace the queue and start playback.
type PlayTracksMsg struct {
	Tracks []track.Track
	Index  int
}

// EnqueueTracksMsg asks the app to append tracks to the queue.
type EnqueueTracksMsg struct {
	Tracks []track.Track
}

// Update handles messages for the library browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	height := m.columnHeight()

	switch key := keyMsg.String(); key {
	case "h", "left":
		if m.activeColumn > ColumnArtists {
			m.activeColumn--
		}
	case "l", "right":
		if m.activeColumn < ColumnTracks {
			m.activeColumn++
		}
	case "enter":
		return m.handleEnter()
	case "a":
		if len(m.tracks) > 0 {
			tracks := append([]track.Track(nil), m.tracks...)
			return m, func() tea.Msg { return EnqueueTracksMsg{Tracks: tracks} }
		}
	default:
		m.handleCursorKey(key, height)
	}

	return m, nil
}

func (m Model) handleEnter() (Model, tea.Cmd) {
	switch m.activeColumn {
	case ColumnArtists:
		if len(m.artists) > 0 {
			m.activeColumn = ColumnAlbums
		}
	case ColumnAlbums:
		if len(m.albums) > 0 {
			m.activeColumn = ColumnTracks
		}
	case ColumnTracks:
		if len(m.tracks) > 0 {
			tracks := append([]track.Track(nil), m.tracks...)
			index := m.trackCursor.Pos()
			return m, func() tea.Msg { return PlayTracksMsg{Tracks: tracks, Index: index} }
		}
	}
	return m, nil
}

func (m *Model) handleCursorKey(key string, height int) {
	switch m.activeColumn {
	case ColumnArtists:
		if m.artistCursor.HandleKey(key, len(m.artists), height) {
			m.loadAlbums()
		}
	case ColumnAlbums:
		if m.albumCursor.HandleKey(key, len(m.albums), height) {
			m.loadTracks()
		}
	case ColumnTracks:
		m.trackCursor.HandleKey(key, len(m.tracks), height)
	}
}
