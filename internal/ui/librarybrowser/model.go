// Package librarybrowser provides a 3-column library browser
// (Artists, Albums, Tracks).
package librarybrowser

import (
	"github.com/tlacroix/aria/internal/library"
	"github.com/tlacroix/aria/internal/track"
	"github.com/tlacroix/aria/internal/ui"
	"github.com/tlacroix/aria/internal/ui/cursor"
)

// Column represents which column has focus.
type Column int

const (
	ColumnArtists Column = iota
	ColumnAlbums
	ColumnTracks
)

// Model is the library browser state.
type Model struct {
	ui.Base

	library *library.Library

	artists []string
	albums  []string
	tracks  []track.Track

	artistCursor cursor.Cursor
	albumCursor  cursor.Cursor
	trackCursor  cursor.Cursor

	activeColumn Column

	err error
}

// New creates a new library browser model.
func New(lib *library.Library) Model {
	return Model{
		library:      lib,
		artistCursor: cursor.New(ui.ScrollMargin),
		albumCursor:  cursor.New(ui.ScrollMargin),
		trackCursor:  cursor.New(ui.ScrollMargin),
		activeColumn: ColumnArtists,
	}
}

// Reload refreshes the artist list from the library, keeping the
// selection where possible.
func (m *Model) Reload() {
	selected := m.SelectedArtist()

	m.artists, m.err = m.library.Artists()
	m.artistCursor.ClampToBounds(len(m.artists))

	if selected != "" {
		for i, a := range m.artists {
			if a == selected {
				m.artistCursor.Jump(i, len(m.artists), m.columnHeight())
				break
			}
		}
	}
	m.loadAlbums()
}

// ActiveColumn returns the currently active column.
func (m Model) ActiveColumn() Column {
	return m.activeColumn
}

// Err returns the last library query error, if any.
func (m Model) Err() error {
	return m.err
}

// SelectedArtist returns the currently selected artist name, or empty string.
func (m Model) SelectedArtist() string {
	if len(m.artists) == 0 {
		return ""
	}
	return m.artists[m.artistCursor.Pos()]
}

// SelectedAlbum returns the currently selected album name, or empty string.
func (m Model) SelectedAlbum() string {
	if len(m.albums) == 0 {
		return ""
	}
	return m.albums[m.albumCursor.Pos()]
}

// SelectedTrack returns the currently selected track, or nil.
func (m Model) SelectedTrack() *track.Track {
	if len(m.tracks) == 0 {
		return nil
	}
	t := m.tracks[m.trackCursor.Pos()]
	return &t
}

// SelectedTrackIndex returns the cursor position in the track column.
func (m Model) SelectedTrackIndex() int {
	return m.trackCursor.Pos()
}

// AlbumTracks returns the tracks of the selected album.
func (m Model) AlbumTracks() []track.Track {
	return m.tracks
}

func (m *Model) loadAlbums() {
	artist := m.SelectedArtist()
	if artist == "" {
		m.albums = nil
		m.tracks = nil
		return
	}

	m.albums, m.err = m.library.Albums(artist)
	m.albumCursor.Reset()
	m.loadTracks()
}

func (m *Model) loadTracks() {
	album := m.SelectedAlbum()
	if album == "" {
		m.tracks = nil
		return
	}

	m.tracks, m.err = m.library.AlbumTracks(m.SelectedArtist(), album)
	m.trackCursor.Reset()
}

func (m Model) columnHeight() int {
	return m.ListHeight(ui.BorderHeight + 1) // border + title line
}

func (m Model) columnWidth() int {
	// Three equal columns, each losing 2 to its border.
	return max(m.Width()/3-2, 0)
}
