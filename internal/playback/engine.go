// internal/playback/engine.go
package playback

import (
	"sync"
	"time"

	"github.com/tlacroix/aria/internal/pipeline"
	"github.com/tlacroix/aria/internal/track"
)

const defaultTickInterval = 250 * time.Millisecond

// Engine supervises a single pipeline. It caches the playback state so
// that redundant transitions are suppressed, translates pipeline events
// into playback events, and emits position ticks while playing. All
// outbound events flow through one channel in production order.
//
// The engine owns the pipeline: once handed over, no other component may
// call the pipeline directly.
type Engine struct {
	mu      sync.Mutex
	pipe    pipeline.Interface
	state   State
	current *track.Track

	events chan Event
	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewEngine creates an engine over the given pipeline and starts its
// event loop. tick is the PositionChange interval while playing; zero
// selects the default.
func NewEngine(p pipeline.Interface, tick time.Duration) *Engine {
	if tick <= 0 {
		tick = defaultTickInterval
	}
	e := &Engine{
		pipe:   p,
		state:  fromPipeline(p.State()),
		events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
	e.wg.Add(1)
	go e.run(tick)
	return e
}

// Load replaces the active track. Any previous playback is torn down
// first; on failure the previous state is preserved.
func (e *Engine) Load(t track.Track) error {
	e.mu.Lock()
	if err := e.pipe.Load(t); err != nil {
		e.mu.Unlock()
		return err
	}
	e.current = &t
	ev := e.setStateLocked(StateStopped)
	e.mu.Unlock()
	e.publish(ev)
	return nil
}

// Play starts or resumes playback of the loaded track.
func (e *Engine) Play() error {
	e.mu.Lock()
	if err := e.pipe.Play(); err != nil {
		e.mu.Unlock()
		return err
	}
	ev := e.setStateLocked(StatePlaying)
	e.mu.Unlock()
	e.publish(ev)
	return nil
}

// Pause pauses playback. Pausing while already paused is a no-op and
// emits nothing.
func (e *Engine) Pause() error {
	e.mu.Lock()
	changed, err := e.pipe.Pause()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	var ev Event
	if changed {
		ev = e.setStateLocked(StatePaused)
	}
	e.mu.Unlock()
	e.publish(ev)
	return nil
}

// Stop tears playback down and releases the device.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if err := e.pipe.Stop(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.current = nil
	ev := e.setStateLocked(StateStopped)
	e.mu.Unlock()
	e.publish(ev)
	return nil
}

// Seek moves the playback position within the active track.
func (e *Engine) Seek(pos time.Duration) error {
	if err := e.pipe.Seek(pos); err != nil {
		return err
	}
	e.publish(PositionChange{Position: pos})
	return nil
}

// SetPreload arms the given track for a gapless transition.
func (e *Engine) SetPreload(t track.Track) error {
	return e.pipe.SetPreload(t)
}

// ClearPreload discards any armed preload.
func (e *Engine) ClearPreload() {
	e.pipe.ClearPreload()
}

// SetDevice selects the output device for subsequent playback.
func (e *Engine) SetDevice(id string) error {
	return e.pipe.SetDevice(id)
}

// Device returns the selected output device ID.
func (e *Engine) Device() string {
	return e.pipe.Device()
}

// State returns the cached playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Current returns the track under playback, or false if none is loaded.
func (e *Engine) Current() (track.Track, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return track.Track{}, false
	}
	return *e.current, true
}

// Position returns the playback position within the active track.
func (e *Engine) Position() time.Duration {
	return e.pipe.Position()
}

// Duration returns the active track duration.
func (e *Engine) Duration() time.Duration {
	return e.pipe.Duration()
}

// Events returns the engine's outbound event channel.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Emit injects an event into the engine's outbound stream. The owner uses
// this for events it produces itself (navigation, skip reports) so that
// subscribers see one totally ordered stream instead of racing sources.
func (e *Engine) Emit(ev Event) {
	e.publish(ev)
}

// Done is closed when the engine shuts down.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Close stops the event loop and closes the pipeline.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.done)
	e.mu.Unlock()
	e.wg.Wait()
	return e.pipe.Close()
}

// setStateLocked updates the cached state and returns the StateChange to
// publish, or nil when the state did not change.
func (e *Engine) setStateLocked(s State) Event {
	if s == e.state {
		return nil
	}
	prev := e.state
	e.state = s
	return StateChange{Previous: prev, Current: s}
}

// publish enqueues an event on the outbound stream, evicting the oldest
// pending event when the buffer is full. Producers never block here: the
// stream's drainer is also a producer (it emits while handling events),
// so a blocking send could deadlock the whole command path.
func (e *Engine) publish(ev Event) {
	if ev == nil {
		return
	}
	for {
		select {
		case <-e.done:
			return
		case e.events <- ev:
			return
		default:
		}
		select {
		case <-e.events:
		default:
		}
	}
}

func (e *Engine) run(tick time.Duration) {
	defer e.wg.Done()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	src := e.pipe.Events()
	for {
		select {
		case <-e.done:
			return
		case ev, ok := <-src:
			if !ok {
				return
			}
			e.handle(ev)
		case <-ticker.C:
			e.mu.Lock()
			playing := e.state == StatePlaying
			e.mu.Unlock()
			if playing {
				e.publish(PositionChange{Position: e.pipe.Position()})
			}
		}
	}
}

// handle translates one pipeline event into playback events. Queue
// indices on TrackChange are left at -1; the owner of the queue fills
// them in before fanning out to subscribers.
func (e *Engine) handle(ev pipeline.Event) {
	switch pe := ev.(type) {
	case pipeline.Switched:
		e.mu.Lock()
		prev := e.current
		cur := pe.Track
		e.current = &cur
		e.mu.Unlock()
		e.publish(TrackChange{Previous: prev, Current: &cur, PreviousIndex: -1, Index: -1})
	case pipeline.EndOfStream:
		e.mu.Lock()
		e.current = nil
		sc := e.setStateLocked(StateStopped)
		e.mu.Unlock()
		e.publish(sc)
		e.publish(EndOfQueue{})
	case pipeline.Fault:
		e.mu.Lock()
		path := ""
		if e.current != nil {
			path = e.current.Path
		}
		e.current = nil
		sc := e.setStateLocked(StateStopped)
		e.mu.Unlock()
		e.publish(sc)
		e.publish(ErrorEvent{Op: "play", Path: path, Err: pe.Err})
	}
}
