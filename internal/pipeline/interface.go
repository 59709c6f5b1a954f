package pipeline

import (
	"time"

	"github.com/tlacroix/aria/internal/track"
)

// Interface is the pipeline contract seen by the engine, for dependency
// injection and testing.
type Interface interface {
	Load(t track.Track) error
	Play() error
	Pause() (bool, error)
	Stop() error
	Seek(pos time.Duration) error
	SetPreload(t track.Track) error
	ClearPreload()
	SetDevice(id string) error
	Device() string
	State() State
	Current() (track.Track, bool)
	Position() time.Duration
	Duration() time.Duration
	Events() <-chan Event
	Close() error
}

// Verify Pipeline implements Interface at compile time.
var _ Interface = (*Pipeline)(nil)
