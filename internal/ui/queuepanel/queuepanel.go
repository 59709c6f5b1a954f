// Package queuepanel renders the playing queue as a focusable side panel.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlacroix/aria/internal/track"
	"github.com/tlacroix/aria/internal/ui"
	"github.com/tlacroix/aria/internal/ui/cursor"
)

// JumpToTrackMsg is sent when the user selects a track to jump to.
type JumpToTrackMsg struct {
	Index int
}

// RemoveTrackMsg is sent when the user removes a track from the queue.
type RemoveTrackMsg struct {
	Index int
}

// Model represents the queue panel state.
type Model struct {
	ui.Base
	cursor     cursor.Cursor
	tracks     []track.Track
	playingIdx int
}

// New creates a new queue panel model.
func New() Model {
	return Model{
		cursor:     cursor.New(ui.ScrollMargin),
		playingIdx: -1,
	}
}

// SetTracks replaces the displayed queue snapshot.
func (m *Model) SetTracks(tracks []track.Track, playingIdx int) {
	m.tracks = tracks
	m.playingIdx = playingIdx
	m.cursor.ClampToBounds(len(tracks))
}

// FollowPlaying moves the cursor to the playing track.
func (m *Model) FollowPlaying() {
	if m.playingIdx >= 0 {
		m.cursor.Jump(m.playingIdx, len(m.tracks), m.ListHeight(ui.PanelOverhead))
	}
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	height := m.ListHeight(ui.PanelOverhead)

	if m.cursor.HandleKey(keyMsg.String(), len(m.tracks), height) {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter":
		if len(m.tracks) > 0 {
			idx := m.cursor.Pos()
			return m, func() tea.Msg { return JumpToTrackMsg{Index: idx} }
		}
	case "d", "delete":
		if len(m.tracks) > 0 {
			idx := m.cursor.Pos()
			return m, func() tea.Msg { return RemoveTrackMsg{Index: idx} }
		}
	}

	return m, nil
}
