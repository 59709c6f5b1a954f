package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlacroix/aria/internal/errmsg"
	"github.com/tlacroix/aria/internal/playback"
	"github.com/tlacroix/aria/internal/ui/librarybrowser"
	"github.com/tlacroix/aria/internal/ui/playerbar"
	"github.com/tlacroix/aria/internal/ui/queuepanel"
)

const seekStep = 10 * time.Second

// Init starts the event pump.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles all bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m.handleEvent(msg.ev)

	case eventsClosedMsg:
		return m, tea.Quit

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.status = errmsg.Format(errmsg.OpLibraryScan, msg.err)
			m.log.Error().Msgf("library: refresh failed: %v", msg.err)
		} else {
			m.status = "Library updated"
		}
		m.browser.Reload()
		return m, m.clearStatusLater()

	case statusClearMsg:
		m.status = ""
		return m, nil

	case librarybrowser.PlayTracksMsg:
		if err := m.ctl.LoadQueueAt(msg.Tracks, msg.Index); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
			return m, m.clearStatusLater()
		}
		m.syncQueuePanel()
		return m, nil

	case librarybrowser.EnqueueTracksMsg:
		m.ctl.AddTracks(msg.Tracks...)
		m.syncQueuePanel()
		m.status = fmt.Sprintf("Queued %d tracks", len(msg.Tracks))
		return m, m.clearStatusLater()

	case queuepanel.JumpToTrackMsg:
		if err := m.ctl.JumpTo(msg.Index); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
			return m, m.clearStatusLater()
		}
		m.syncQueuePanel()
		return m, nil

	case queuepanel.RemoveTrackMsg:
		if err := m.ctl.RemoveTrack(msg.Index); err != nil {
			m.status = errmsg.Format(errmsg.OpQueueLoad, err)
			return m, m.clearStatusLater()
		}
		m.syncQueuePanel()
		return m, nil
	}

	return m.updatePanels(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctl.Close()
		return m, tea.Quit

	case "tab":
		if m.focus == PanelLibrary {
			m.setFocus(PanelQueue)
			m.queuePanel.FollowPlaying()
		} else {
			m.setFocus(PanelLibrary)
		}
		return m, nil

	case " ":
		if err := m.ctl.Toggle(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
			return m, m.clearStatusLater()
		}
		return m, nil

	case "s":
		if err := m.ctl.Stop(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStop, err)
			return m, m.clearStatusLater()
		}
		return m, nil

	case "n":
		if err := m.ctl.Next(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackNext, err)
			return m, m.clearStatusLater()
		}
		m.syncQueuePanel()
		return m, nil

	case "p":
		if err := m.ctl.Previous(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackPrev, err)
			return m, m.clearStatusLater()
		}
		m.syncQueuePanel()
		return m, nil

	case ",":
		m.seekBy(-seekStep)
		return m, nil

	case ".":
		m.seekBy(seekStep)
		return m, nil

	case "u":
		if m.scanning {
			return m, nil
		}
		m.scanning = true
		m.status = "Updating library..."
		return m, m.refreshLibrary()

	case "c":
		if err := m.ctl.ClearQueue(); err != nil {
			m.status = errmsg.Format(errmsg.OpQueueLoad, err)
			return m, m.clearStatusLater()
		}
		m.syncQueuePanel()
		return m, nil
	}

	return m.updatePanels(msg)
}

// handleEvent folds one playback event into the model.
func (m Model) handleEvent(ev playback.Event) (tea.Model, tea.Cmd) {
	switch e := ev.(type) {
	case playback.TrackChange, playback.StateChange, playback.EndOfQueue:
		m.syncQueuePanel()

	case playback.PositionChange:
		// The player bar reads position straight from the controller;
		// the event only triggers a redraw.

	case playback.ErrorEvent:
		m.status = errmsg.FormatWith(errmsg.OpPlaybackStart, e.Path, e.Err)
		return m, tea.Batch(m.waitForEvent(), m.clearStatusLater())
	}
	return m, m.waitForEvent()
}

func (m *Model) seekBy(delta time.Duration) {
	if err := m.ctl.SeekBy(delta); err != nil {
		m.log.Debug().Msgf("playback: seek ignored: %v", err)
	}
}

func (m Model) updatePanels(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.browser, cmd = m.browser.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.queuePanel, cmd = m.queuePanel.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) clearStatusLater() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// layout distributes the window between the panels, the player bar and
// the status line.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentHeight := m.height - playerbar.Height - 1 // bar + status line
	if contentHeight < 0 {
		contentHeight = 0
	}

	queueWidth := m.width / 3
	browserWidth := m.width - queueWidth

	m.browser.SetSize(browserWidth, contentHeight)
	m.queuePanel.SetSize(queueWidth, contentHeight)
}
