// internal/playback/state.go
package playback

import "github.com/tlacroix/aria/internal/pipeline"

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
	// StateBuffering is reserved for network-backed sources. Local file
	// playback never produces it.
	StateBuffering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateBuffering:
		return "Buffering"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// fromPipeline maps a pipeline state to a playback state. Both Null and
// Ready collapse to Stopped: a loaded-but-idle pipeline is not audible.
func fromPipeline(ps pipeline.State) State {
	switch ps {
	case pipeline.StatePlaying:
		return StatePlaying
	case pipeline.StatePaused:
		return StatePaused
	default:
		return StateStopped
	}
}
