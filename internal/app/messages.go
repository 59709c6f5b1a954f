package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlacroix/aria/internal/playback"
)

// eventMsg wraps one playback event from the controller subscription.
type eventMsg struct {
	ev playback.Event
}

// eventsClosedMsg signals that the subscription was closed.
type eventsClosedMsg struct{}

// scanDoneMsg reports a finished library refresh.
type scanDoneMsg struct {
	err error
}

// statusClearMsg clears the transient status line.
type statusClearMsg struct{}

// waitForEvent blocks on the subscription and delivers the next playback
// event into the bubbletea loop.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-m.sub.C:
			if !ok {
				return eventsClosedMsg{}
			}
			return eventMsg{ev: ev}
		case <-m.sub.Done:
			return eventsClosedMsg{}
		}
	}
}

// refreshLibrary runs a library scan in the background.
func (m Model) refreshLibrary() tea.Cmd {
	sources := m.cfg.LibrarySources
	lib := m.lib
	return func() tea.Msg {
		err := lib.Refresh(sources, nil)
		return scanDoneMsg{err: err}
	}
}
