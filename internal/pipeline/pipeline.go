// Package pipeline owns the audio processing graph: decode paths, format
// negotiation, and the exclusive device handle. Nothing else in the engine
// touches the device or samples.
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/tlacroix/aria/internal/device"
	"github.com/tlacroix/aria/internal/track"
)

const defaultBufferFrames = 1024

// Config configures a Pipeline.
type Config struct {
	Catalog  device.Catalog
	DeviceID string
	// Open decodes a track path into a sample stream. Defaults to OpenStream.
	Open StreamOpener
	// BufferFrames is the render block size in frames.
	BufferFrames int
}

// path is one decode path: a track with its open stream.
type path struct {
	track  track.Track
	stream beep.StreamSeekCloser
	format beep.Format
	dev    device.Format
}

func (p *path) close() {
	if p != nil && p.stream != nil {
		p.stream.Close()
	}
}

// Pipeline is the single active audio graph. It holds at most one active
// decode path, at most one preloaded path, and the device handle while in
// Playing or Paused.
type Pipeline struct {
	mu   sync.Mutex
	cond *sync.Cond

	catalog  device.Catalog
	deviceID string
	open     StreamOpener
	frames   int

	state   State
	active  *path
	preload *path
	handle  device.Handle

	// gen invalidates a running render loop; it is bumped on every teardown
	// so Stop preempts in-flight rendering without joining the goroutine.
	gen int

	events chan Event
	done   chan struct{}
	closed bool
}

// New creates a pipeline bound to a device in the catalog. Construction
// fails if the catalog has no such device; the system cannot start without
// an output.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("pipeline: no device catalog")
	}
	if _, ok := cfg.Catalog.Lookup(cfg.DeviceID); !ok {
		return nil, &DeviceError{Device: cfg.DeviceID, Err: device.ErrUnknownDevice}
	}
	if cfg.Open == nil {
		cfg.Open = OpenStream
	}
	if cfg.BufferFrames <= 0 {
		cfg.BufferFrames = defaultBufferFrames
	}
	p := &Pipeline{
		catalog:  cfg.Catalog,
		deviceID: cfg.DeviceID,
		open:     cfg.Open,
		frames:   cfg.BufferFrames,
		state:    StateNull,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	return p, nil
}

// Events returns the render loop's notification channel.
func (p *Pipeline) Events() <-chan Event { return p.events }

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the active track, if one is loaded.
func (p *Pipeline) Current() (track.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return track.Track{}, false
	}
	return p.active.track, true
}

// Position returns the playback position within the active track.
func (p *Pipeline) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return 0
	}
	return p.active.format.SampleRate.D(p.active.stream.Position())
}

// Duration returns the active track's length as reported by its stream.
func (p *Pipeline) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return 0
	}
	return p.active.format.SampleRate.D(p.active.stream.Len())
}

// Load opens t as the active track and moves to Ready. The device is
// validated against t's exact format but not acquired until Play. On a
// validation or decode failure the previous state is left untouched.
func (p *Pipeline) Load(t track.Track) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	devFmt, err := p.validateLocked(t)
	if err != nil {
		return err
	}
	stream, format, err := p.open(t.Path)
	if err != nil {
		return err
	}

	p.teardownLocked()
	p.active = &path{track: t, stream: stream, format: format, dev: devFmt}
	p.state = StateReady
	return nil
}

// validateLocked checks that the target device accepts t's native format.
// No fallback conversion exists: a mismatch is a hard DeviceError.
func (p *Pipeline) validateLocked(t track.Track) (device.Format, error) {
	desc, ok := p.catalog.Lookup(p.deviceID)
	if !ok {
		return device.Format{}, &DeviceError{Device: p.deviceID, Err: device.ErrUnknownDevice}
	}
	devFmt := device.Format{SampleRate: t.SampleRate, BitDepth: t.BitDepth}
	if !desc.Supports(devFmt) {
		return device.Format{}, &DeviceError{
			Device: p.deviceID,
			Err: fmt.Errorf("%w: %d Hz / %d-bit", device.ErrUnsupportedFormat,
				t.SampleRate, t.BitDepth),
		}
	}
	return devFmt, nil
}

// Play starts or resumes playback. From Ready it acquires the device
// exclusively; from Paused it resumes the held handle.
func (p *Pipeline) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StatePaused:
		p.handle.Resume()
		p.state = StatePlaying
		p.cond.Broadcast()
		return nil
	case StateReady:
		handle, err := p.catalog.Open(p.deviceID, p.active.dev)
		if err != nil {
			return &DeviceError{Device: p.deviceID, Err: err}
		}
		p.handle = handle
		p.state = StatePlaying
		go p.render(p.gen)
		return nil
	default:
		return &StateError{Op: "play", State: p.state}
	}
}

// Pause pauses playback. Returns whether a transition happened: pausing an
// already paused pipeline is a no-op, not an error.
func (p *Pipeline) Pause() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StatePlaying:
		p.handle.Pause()
		p.state = StatePaused
		return true, nil
	case StatePaused:
		return false, nil
	default:
		return false, &StateError{Op: "pause", State: p.state}
	}
}

// Stop tears the graph down from any state: streams closed, device released
// synchronously, pending preload discarded. Always lands in Null.
func (p *Pipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardownLocked()
	return nil
}

// Seek repositions the read cursor. Valid only while a track is active, and
// only within [0, duration); out-of-range requests fail instead of clamping
// so callers can detect bugs.
func (p *Pipeline) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.IsActive() {
		return &StateError{Op: "seek", State: p.state}
	}
	dur := p.active.format.SampleRate.D(p.active.stream.Len())
	if pos < 0 || pos >= dur {
		return &StateError{Op: fmt.Sprintf("seek to %v", pos), State: p.state}
	}
	if err := p.active.stream.Seek(p.active.format.SampleRate.N(pos)); err != nil {
		return &DecodeError{Path: p.active.track.Path, Err: err}
	}
	return nil
}

// SetPreload opens a second, inactive decode path for t without disturbing
// the active one. Valid only while Playing or Paused. The preloaded format
// is validated now so the later switch cannot fail on negotiation.
func (p *Pipeline) SetPreload(t track.Track) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.IsActive() {
		return &StateError{Op: "preload", State: p.state}
	}
	devFmt, err := p.validateLocked(t)
	if err != nil {
		return err
	}
	stream, format, err := p.open(t.Path)
	if err != nil {
		return err
	}
	p.preload.close()
	p.preload = &path{track: t, stream: stream, format: format, dev: devFmt}
	return nil
}

// ClearPreload discards the inactive decode path, if any.
func (p *Pipeline) ClearPreload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.preload.close()
	p.preload = nil
}

// SetDevice retargets the pipeline at another catalog device. Only valid
// with no track active; the controller stops and reloads around it.
func (p *Pipeline) SetDevice(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.IsActive() {
		return &StateError{Op: "select device", State: p.state}
	}
	if _, ok := p.catalog.Lookup(id); !ok {
		return &DeviceError{Device: id, Err: device.ErrUnknownDevice}
	}
	p.deviceID = id
	return nil
}

// Device returns the current target device id.
func (p *Pipeline) Device() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deviceID
}

// Close stops the pipeline and releases all resources.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.teardownLocked()
	close(p.done)
	return nil
}

// teardownLocked is the single path back to Null. It closes both decode
// paths, releases the device, and invalidates any running render loop.
func (p *Pipeline) teardownLocked() {
	p.gen++
	p.cond.Broadcast()
	p.active.close()
	p.active = nil
	p.preload.close()
	p.preload = nil
	if p.handle != nil {
		p.handle.Close()
		p.handle = nil
	}
	p.state = StateNull
}

// render is the device-facing loop. It runs on its own goroutine so a slow
// or blocking device write never stalls command handling.
func (p *Pipeline) render(gen int) {
	buf := make([][2]float64, p.frames)
	for {
		p.mu.Lock()
		for p.gen == gen && p.state == StatePaused {
			p.cond.Wait()
		}
		if p.gen != gen || p.state != StatePlaying {
			p.mu.Unlock()
			return
		}
		n, evs, done, reconf := p.fillLocked(buf)
		handle := p.handle
		p.mu.Unlock()

		if n > 0 {
			if err := handle.Write(buf[:n]); err != nil {
				p.mu.Lock()
				preempted := p.gen != gen
				if !preempted {
					p.teardownLocked()
				}
				p.mu.Unlock()
				if !preempted {
					p.publish(Fault{Err: &DeviceError{Device: p.deviceID, Err: err}})
				}
				return
			}
		}
		if done {
			p.mu.Lock()
			if p.gen == gen {
				p.teardownLocked()
			}
			p.mu.Unlock()
		}
		for _, ev := range evs {
			p.publish(ev)
		}
		if done {
			return
		}
		if reconf {
			// The next track needs a different device format. The old
			// track's tail has been written above; renegotiate the held
			// handle and switch paths in one state update, never passing
			// through Null.
			p.mu.Lock()
			if p.gen != gen {
				p.mu.Unlock()
				return
			}
			if p.preload == nil {
				// The preload was cleared while the old track's tail was
				// in the device write. The old track is drained and there
				// is nothing to switch to: a plain end of stream.
				p.teardownLocked()
				p.mu.Unlock()
				p.publish(EndOfStream{})
				return
			}
			p.active.close()
			if err := p.handle.Reconfigure(p.preload.dev); err != nil {
				p.active = p.preload
				p.preload = nil
				p.teardownLocked()
				p.mu.Unlock()
				p.publish(Fault{Err: &DeviceError{Device: p.deviceID, Err: err}})
				return
			}
			p.active = p.preload
			p.preload = nil
			next := p.active.track
			p.mu.Unlock()
			p.publish(Switched{Track: next})
		}
	}
}

// fillLocked pulls one block of samples from the active path. When the
// active path runs out and a preloaded path with the same device format is
// set, it switches in place: the seam between the two tracks sits inside a
// single device write, with no silence inserted. A preload with a different
// device format breaks the block instead (reconf), so the old track's last
// samples are flushed before the handle is renegotiated.
func (p *Pipeline) fillLocked(buf [][2]float64) (n int, evs []Event, done, reconf bool) {
	for n < len(buf) {
		m, ok := p.active.stream.Stream(buf[n:])
		n += m
		if ok {
			if m == 0 {
				break
			}
			continue
		}
		if err := p.active.stream.Err(); err != nil {
			evs = append(evs, Fault{Err: &DecodeError{Path: p.active.track.Path, Err: err}})
			return n, evs, true, false
		}
		if p.preload == nil {
			return n, append(evs, EndOfStream{}), true, false
		}
		if p.preload.dev != p.active.dev {
			return n, evs, false, true
		}

		p.active.close()
		p.active = p.preload
		p.preload = nil
		evs = append(evs, Switched{Track: p.active.track})
	}
	return n, evs, false, false
}

// publish delivers a render-loop event to the engine. The channel is
// buffered and the engine drains it continuously; on shutdown the done
// channel unblocks any in-flight send.
func (p *Pipeline) publish(ev Event) {
	select {
	case p.events <- ev:
	case <-p.done:
	}
}
