// Package app is the bubbletea shell: it wires the library browser, the
// queue panel and the player bar over the playback controller and keeps
// them in sync with the controller's event stream.
package app

import (
	"github.com/rs/zerolog"

	"github.com/tlacroix/aria/internal/config"
	"github.com/tlacroix/aria/internal/controller"
	"github.com/tlacroix/aria/internal/library"
	"github.com/tlacroix/aria/internal/playback"
	"github.com/tlacroix/aria/internal/ui/librarybrowser"
	"github.com/tlacroix/aria/internal/ui/queuepanel"
)

// Panel identifies which panel has keyboard focus.
type Panel int

const (
	PanelLibrary Panel = iota
	PanelQueue
)

// Model is the application root model.
type Model struct {
	cfg *config.Config
	ctl *controller.Controller
	lib *library.Library
	log zerolog.Logger

	sub *playback.Subscription

	browser    librarybrowser.Model
	queuePanel queuepanel.Model

	focus    Panel
	width    int
	height   int
	scanning bool
	status   string // transient status / error line
}

// New builds the root model. The subscription is owned by the model and
// drained through the bubbletea message loop.
func New(cfg *config.Config, ctl *controller.Controller, lib *library.Library, log zerolog.Logger) Model {
	m := Model{
		cfg:        cfg,
		ctl:        ctl,
		lib:        lib,
		log:        log,
		sub:        ctl.Subscribe(),
		browser:    librarybrowser.New(lib),
		queuePanel: queuepanel.New(),
		focus:      PanelLibrary,
	}
	m.browser.SetFocused(true)
	m.browser.Reload()
	m.syncQueuePanel()
	return m
}

func (m *Model) syncQueuePanel() {
	m.queuePanel.SetTracks(m.ctl.QueueTracks(), m.ctl.QueueIndex())
}

func (m *Model) setFocus(p Panel) {
	m.focus = p
	m.browser.SetFocused(p == PanelLibrary)
	m.queuePanel.SetFocused(p == PanelQueue)
}
