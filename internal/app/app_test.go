package app

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tlacroix/aria/internal/config"
	"github.com/tlacroix/aria/internal/controller"
	"github.com/tlacroix/aria/internal/library"
	"github.com/tlacroix/aria/internal/pipeline"
	"github.com/tlacroix/aria/internal/playback"
	"github.com/tlacroix/aria/internal/track"
	"github.com/tlacroix/aria/internal/ui/librarybrowser"
)

func newTestApp(t *testing.T) (Model, *pipeline.Mock) {
	t.Helper()

	mock := pipeline.NewMock()
	eng := playback.NewEngine(mock, time.Hour)
	ctl, err := controller.New(controller.Config{
		Engine:        eng,
		Logger:        zerolog.Nop(),
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	})
	if err != nil {
		t.Fatalf("controller.New: %v", err)
	}
	t.Cleanup(func() { ctl.Close() })

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	lib, err := library.New(db)
	if err != nil {
		t.Fatalf("library.New: %v", err)
	}

	m := New(&config.Config{}, ctl, lib, zerolog.Nop())
	m.width = 100
	m.height = 30
	m.layout()
	return m, mock
}

func testTracks(paths ...string) []track.Track {
	ts := make([]track.Track, len(paths))
	for i, p := range paths {
		ts[i] = track.Track{Path: p, Title: filepath.Base(p), SampleRate: 44100, BitDepth: 16}
	}
	return ts
}

func TestPlayTracksMsgLoadsQueue(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(librarybrowser.PlayTracksMsg{
		Tracks: testTracks("/a.flac", "/b.flac"),
		Index:  1,
	})
	m = next.(Model)

	if m.ctl.QueueLen() != 2 {
		t.Fatalf("queue len = %d, want 2", m.ctl.QueueLen())
	}
	if m.ctl.QueueIndex() != 1 {
		t.Fatalf("queue index = %d, want 1", m.ctl.QueueIndex())
	}
	if m.ctl.State() != playback.StatePlaying {
		t.Fatalf("state = %v, want Playing", m.ctl.State())
	}
}

func TestEnqueueTracksMsgAppends(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(librarybrowser.EnqueueTracksMsg{Tracks: testTracks("/a.flac")})
	m = next.(Model)

	if m.ctl.QueueLen() != 1 {
		t.Fatalf("queue len = %d, want 1", m.ctl.QueueLen())
	}
	if !strings.Contains(m.status, "Queued 1") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(librarybrowser.PlayTracksMsg{Tracks: testTracks("/a.flac")})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if m.ctl.State() != playback.StatePaused {
		t.Fatalf("state = %v, want Paused", m.ctl.State())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if m.ctl.State() != playback.StatePlaying {
		t.Fatalf("state = %v, want Playing", m.ctl.State())
	}
}

func TestTabMovesFocusToQueue(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)

	if m.focus != PanelQueue {
		t.Fatalf("focus = %v, want PanelQueue", m.focus)
	}
}

func TestViewRendersPanelsAndIdleBar(t *testing.T) {
	m, _ := newTestApp(t)

	out := m.View()
	if !strings.Contains(out, "Artists") || !strings.Contains(out, "Queue (0/0)") {
		t.Fatalf("view missing panels:\n%s", out)
	}
	if !strings.Contains(out, "q quit") {
		t.Fatal("view missing idle bar hint")
	}
}

func TestScanDoneSetsStatus(t *testing.T) {
	m, _ := newTestApp(t)
	m.scanning = true

	next, _ := m.Update(scanDoneMsg{})
	m = next.(Model)

	if m.scanning {
		t.Fatal("scanning still true")
	}
	if m.status != "Library updated" {
		t.Fatalf("status = %q", m.status)
	}
}
