package playback

import (
	"time"

	"github.com/tlacroix/aria/internal/track"
)

// Event is the union of all playback notifications. Events of every kind
// travel over a single channel so subscribers observe them in the exact
// order they were produced: a StateChange to Playing is never seen after
// the PositionChange ticks that follow it.
type Event interface {
	playbackEvent()
}

// StateChange is emitted when the playback state changes. Redundant
// transitions are suppressed at the source: pausing an already-paused
// engine emits nothing.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback moves to a different track.
//
// Emitted by:
//   - explicit navigation (Next/Previous/JumpTo) with playback active
//   - a gapless transition when the current track drains into the
//     preloaded one
//
// NOT emitted by:
//   - Pause/Stop/Seek: state and position changes do not emit TrackChange
//   - queue edits that leave the current track in place
type TrackChange struct {
	Previous      *track.Track
	Current       *track.Track
	PreviousIndex int
	Index         int
}

// PositionChange is emitted on seeks and periodically while playing.
type PositionChange struct {
	Position time.Duration
}

// EndOfQueue is emitted when the last queued track finishes and nothing
// is preloaded. Playback stops; the queue itself is left intact.
type EndOfQueue struct{}

// ErrorEvent is emitted when an operation fails asynchronously, including
// tracks skipped because they could not be decoded.
type ErrorEvent struct {
	Op   string // e.g. "play", "preload"
	Path string // track path if applicable
	Err  error
}

func (StateChange) playbackEvent()    {}
func (TrackChange) playbackEvent()    {}
func (PositionChange) playbackEvent() {}
func (EndOfQueue) playbackEvent()     {}
func (ErrorEvent) playbackEvent()     {}
