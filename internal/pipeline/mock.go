package pipeline

import (
	"sync"
	"time"

	"github.com/tlacroix/aria/internal/track"
)

// Mock is a scriptable test double for the pipeline.
type Mock struct {
	mu       sync.Mutex
	state    State
	active   *track.Track
	preload  *track.Track
	deviceID string
	position time.Duration
	duration time.Duration

	loadErr    error
	playErrs   []error // consumed one per Play call; nil plays succeed
	preloadErr error

	loadCalls    []track.Track
	preloadCalls []track.Track
	playCalls    int
	stopCalls    int
	seekCalls    []time.Duration

	events chan Event
}

// NewMock creates a mock pipeline in Null state.
func NewMock() *Mock {
	return &Mock{events: make(chan Event, 16)}
}

func (m *Mock) Load(t track.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, t)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.active = &t
	m.preload = nil
	m.state = StateReady
	m.position = 0
	m.duration = t.Duration
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if len(m.playErrs) > 0 {
		err := m.playErrs[0]
		m.playErrs = m.playErrs[1:]
		if err != nil {
			return err
		}
	}
	switch m.state {
	case StateReady, StatePaused:
		m.state = StatePlaying
		return nil
	default:
		return &StateError{Op: "play", State: m.state}
	}
}

func (m *Mock) Pause() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StatePlaying:
		m.state = StatePaused
		return true, nil
	case StatePaused:
		return false, nil
	default:
		return false, &StateError{Op: "pause", State: m.state}
	}
}

func (m *Mock) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	m.state = StateNull
	m.active = nil
	m.preload = nil
	m.position = 0
	return nil
}

func (m *Mock) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.IsActive() {
		return &StateError{Op: "seek", State: m.state}
	}
	if pos < 0 || pos >= m.duration {
		return &StateError{Op: "seek", State: m.state}
	}
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
	return nil
}

func (m *Mock) SetPreload(t track.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preloadCalls = append(m.preloadCalls, t)
	if m.preloadErr != nil {
		return m.preloadErr
	}
	if !m.state.IsActive() {
		return &StateError{Op: "preload", State: m.state}
	}
	m.preload = &t
	return nil
}

func (m *Mock) ClearPreload() {
	m.mu.Lock()
	m.preload = nil
	m.mu.Unlock()
}

func (m *Mock) SetDevice(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsActive() {
		return &StateError{Op: "select device", State: m.state}
	}
	m.deviceID = id
	return nil
}

func (m *Mock) Device() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceID
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Current() (track.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return track.Track{}, false
	}
	return *m.active, true
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error { return nil }

// Test helpers.

func (m *Mock) SetLoadError(err error)    { m.mu.Lock(); m.loadErr = err; m.mu.Unlock() }
func (m *Mock) SetPreloadError(err error) { m.mu.Lock(); m.preloadErr = err; m.mu.Unlock() }

// QueuePlayErrors scripts the results of successive Play calls.
func (m *Mock) QueuePlayErrors(errs ...error) {
	m.mu.Lock()
	m.playErrs = append(m.playErrs, errs...)
	m.mu.Unlock()
}

func (m *Mock) SetPosition(pos time.Duration) { m.mu.Lock(); m.position = pos; m.mu.Unlock() }

func (m *Mock) LoadCalls() []track.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]track.Track(nil), m.loadCalls...)
}

func (m *Mock) PreloadCalls() []track.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]track.Track(nil), m.preloadCalls...)
}

func (m *Mock) PreloadedTrack() (track.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.preload == nil {
		return track.Track{}, false
	}
	return *m.preload, true
}

func (m *Mock) PlayCalls() int { m.mu.Lock(); defer m.mu.Unlock(); return m.playCalls }
func (m *Mock) StopCalls() int { m.mu.Lock(); defer m.mu.Unlock(); return m.stopCalls }

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// SimulateSwitch emits a gapless switch to the preloaded track, mirroring
// what the real render loop does at end of stream with a preload set.
func (m *Mock) SimulateSwitch() {
	m.mu.Lock()
	if m.preload == nil {
		m.mu.Unlock()
		return
	}
	next := *m.preload
	m.active = m.preload
	m.preload = nil
	m.position = 0
	m.duration = next.Duration
	m.mu.Unlock()
	m.events <- Switched{Track: next}
}

// SimulateEndOfStream emits end of stream with no preload, returning to Null.
func (m *Mock) SimulateEndOfStream() {
	m.mu.Lock()
	m.state = StateNull
	m.active = nil
	m.mu.Unlock()
	m.events <- EndOfStream{}
}

// SimulateFault emits a render fault, returning to Null.
func (m *Mock) SimulateFault(err error) {
	m.mu.Lock()
	m.state = StateNull
	m.active = nil
	m.mu.Unlock()
	m.events <- Fault{Err: err}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
