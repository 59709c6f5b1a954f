package pipeline

// State is the internal pipeline state machine.
//
//	┌──────┐  Load   ┌───────┐  Play   ┌─────────┐
//	│ Null │ ───────▶│ Ready │ ───────▶│ Playing │
//	└──────┘         └───────┘         └─────────┘
//	    ▲                                 │  ▲
//	    │ Stop / end of stream      Pause │  │ Play
//	    │ (no preload)                    ▼  │
//	    │                              ┌────────┐
//	    └──────────────────────────────│ Paused │
//	                     Stop          └────────┘
//
// Null and Ready both map to the public Stopped state; neither holds a
// device handle. A gapless track switch happens entirely inside Playing.
type State int

const (
	StateNull State = iota
	StateReady
	StatePaused
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNull:
		return "Null"
	case StateReady:
		return "Ready"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is open and the device is held.
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
