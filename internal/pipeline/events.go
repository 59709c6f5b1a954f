package pipeline

import "github.com/tlacroix/aria/internal/track"

// Event is an asynchronous notification from the render loop. Synchronous
// operations report through their return values; only things the render loop
// discovers on its own (track switches, stream end, faults) arrive here.
type Event interface {
	pipelineEvent()
}

// Switched reports a gapless transition to the preloaded track. The pipeline
// stayed in Playing throughout; the device was never released.
type Switched struct {
	Track track.Track
}

// EndOfStream reports that the active track finished with no preload set.
// The pipeline has already returned to Null and released the device.
type EndOfStream struct{}

// Fault reports a decode or device failure on the active path. The pipeline
// has already returned to Null.
type Fault struct {
	Err error
}

func (Switched) pipelineEvent()    {}
func (EndOfStream) pipelineEvent() {}
func (Fault) pipelineEvent()       {}
