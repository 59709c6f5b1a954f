// Package controller is the single entry point for playback commands. It
// owns the queue and the engine, serializes every command under one lock,
// applies the device-busy retry and bad-track skip policies, and fans
// engine events out to subscribers.
package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tlacroix/aria/internal/pipeline"
	"github.com/tlacroix/aria/internal/playback"
	"github.com/tlacroix/aria/internal/queue"
	"github.com/tlacroix/aria/internal/track"
)

var (
	// ErrClosed is returned for commands issued after Close.
	ErrClosed = errors.New("controller: closed")
	// ErrQueueEmpty is returned when a command needs a current track and
	// the queue has none.
	ErrQueueEmpty = errors.New("controller: queue is empty")
)

// Event operation names, matched against ErrorEvent.Op.
const (
	opPlay    = "play"
	opLoad    = "load"
	opPreload = "preload"
	opDevice  = "device"
)

const (
	defaultRetryAttempts = 5
	defaultRetryDelay    = 100 * time.Millisecond
)

// Engine is the supervisor contract the controller drives. Implemented by
// *playback.Engine.
type Engine interface {
	Load(t track.Track) error
	Play() error
	Pause() error
	Stop() error
	Seek(pos time.Duration) error
	SetPreload(t track.Track) error
	ClearPreload()
	SetDevice(id string) error
	Device() string
	State() playback.State
	Current() (track.Track, bool)
	Position() time.Duration
	Duration() time.Duration
	Events() <-chan playback.Event
	Emit(ev playback.Event)
	Close() error
}

// Config holds controller configuration.
type Config struct {
	Engine Engine
	Logger zerolog.Logger

	// RetryAttempts bounds Play retries when the device is busy; zero
	// selects the default.
	RetryAttempts int
	// RetryDelay is the initial backoff delay, doubled per attempt.
	RetryDelay time.Duration
}

// Controller drives the engine from an owned queue.
//
// Event flow is strictly one-way: commands produce events through
// Engine.Emit, the engine produces its own, and a single forward
// goroutine drains the engine stream and fans out to subscribers. That
// makes cross-type event order equal to production order.
type Controller struct {
	mu  sync.Mutex
	eng Engine
	q   *queue.Queue
	log zerolog.Logger

	retryAttempts int
	retryDelay    time.Duration

	subsMu sync.RWMutex
	subs   []*playback.Subscription

	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// New creates a controller over the given engine and starts its event
// loop. Configuration errors are fatal: no half-built controller is
// returned.
func New(cfg Config) (*Controller, error) {
	if cfg.Engine == nil {
		return nil, errors.New("controller: engine is required")
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryAttempts < 0 {
		return nil, errors.New("controller: negative retry attempts")
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	c := &Controller{
		eng:           cfg.Engine,
		q:             queue.New(),
		log:           cfg.Logger,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		done:          make(chan struct{}),
	}
	c.wg.Add(1)
	go c.forward()
	return c, nil
}

// Subscribe registers a new event subscriber.
func (c *Controller) Subscribe() *playback.Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := playback.NewSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// Close shuts down the controller, the engine, and all subscriptions.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	err := c.eng.Close()
	c.wg.Wait()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.Close()
	}
	c.subs = nil
	c.subsMu.Unlock()
	return err
}

// LoadQueue replaces the queue contents and starts playback of the first
// track. An empty replacement stops playback and clears the queue.
func (c *Controller) LoadQueue(tracks []track.Track) error {
	return c.LoadQueueAt(tracks, 0)
}

// LoadQueueAt replaces the queue contents and starts playback at index.
func (c *Controller) LoadQueueAt(tracks []track.Track, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.eng.Stop(); err != nil {
		return err
	}
	c.q.Replace(tracks)
	if c.q.IsEmpty() {
		return nil
	}
	if index > 0 {
		if _, err := c.q.JumpTo(index); err != nil {
			return err
		}
	}
	return c.playCurrentLocked(nil, -1)
}

// Play starts or resumes playback. From Stopped it plays the track under
// the queue cursor.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.eng.State().IsActive() {
		return c.eng.Play()
	}
	if c.q.Current() == nil {
		return ErrQueueEmpty
	}
	return c.playCurrentLocked(nil, -1)
}

// Pause pauses playback. A redundant pause is a no-op.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.eng.Pause()
}

// Toggle flips between playing and paused, starting playback from
// Stopped.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	switch c.eng.State() {
	case playback.StatePlaying:
		return c.eng.Pause()
	case playback.StatePaused:
		return c.eng.Play()
	default:
		if c.q.Current() == nil {
			return ErrQueueEmpty
		}
		return c.playCurrentLocked(nil, -1)
	}
}

// Stop halts playback and releases the device. The queue and its cursor
// are left intact, so Play resumes from the same track.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.eng.Stop()
}

// Next moves to the following track and plays it. At the end of the
// queue it does nothing.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	prev := c.q.Current()
	prevIdx := c.q.CurrentIndex()
	if c.q.Advance() == nil {
		return nil
	}
	return c.playCurrentLocked(prev, prevIdx)
}

// Previous moves to the preceding track and plays it. On the first track
// it restarts the current one from the beginning instead.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	prev := c.q.Current()
	prevIdx := c.q.CurrentIndex()
	if c.q.Previous() == nil {
		return ErrQueueEmpty
	}
	if c.q.CurrentIndex() == prevIdx {
		if c.eng.State().IsActive() {
			return c.eng.Seek(0)
		}
		return c.playCurrentLocked(nil, -1)
	}
	return c.playCurrentLocked(prev, prevIdx)
}

// JumpTo moves the queue cursor to index and plays that track.
func (c *Controller) JumpTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	prev := c.q.Current()
	prevIdx := c.q.CurrentIndex()
	if _, err := c.q.JumpTo(index); err != nil {
		return err
	}
	return c.playCurrentLocked(prev, prevIdx)
}

// SeekTo moves the playback position to pos.
func (c *Controller) SeekTo(pos time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.eng.Seek(pos)
}

// SeekBy moves the playback position by delta, clamped to the track.
func (c *Controller) SeekBy(delta time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	pos := c.eng.Position() + delta
	if pos < 0 {
		pos = 0
	}
	if dur := c.eng.Duration(); dur > 0 && pos >= dur {
		pos = dur - time.Millisecond
	}
	return c.eng.Seek(pos)
}

// SelectDevice switches the output device. Active playback is stopped,
// the device swapped, and the current track restarted on the new device.
func (c *Controller) SelectDevice(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	resume := c.eng.State() == playback.StatePlaying
	if c.eng.State().IsActive() {
		if err := c.eng.Stop(); err != nil {
			return err
		}
	}
	if err := c.eng.SetDevice(id); err != nil {
		c.eng.Emit(playback.ErrorEvent{Op: opDevice, Err: err})
		return err
	}
	c.log.Debug().Msgf("playback: output device selected: device=%s", id)
	if resume && c.q.Current() != nil {
		return c.playCurrentLocked(nil, -1)
	}
	return nil
}

// Device returns the selected output device ID.
func (c *Controller) Device() string {
	return c.eng.Device()
}

// State returns the current playback state.
func (c *Controller) State() playback.State {
	return c.eng.State()
}

// Position returns the playback position within the current track.
func (c *Controller) Position() time.Duration {
	return c.eng.Position()
}

// Duration returns the current track duration.
func (c *Controller) Duration() time.Duration {
	return c.eng.Duration()
}

// CurrentTrack returns the track under the queue cursor, or nil.
func (c *Controller) CurrentTrack() *track.Track {
	return c.q.Current()
}

// QueueTracks returns a copy of the queue contents.
func (c *Controller) QueueTracks() []track.Track {
	return c.q.Tracks()
}

// QueueIndex returns the queue cursor position (-1 if none).
func (c *Controller) QueueIndex() int {
	return c.q.CurrentIndex()
}

// QueueLen returns the number of queued tracks.
func (c *Controller) QueueLen() int {
	return c.q.Len()
}

// AddTracks appends tracks to the queue. If the appended tracks create a
// successor for the current track, the preload is armed.
func (c *Controller) AddTracks(tracks ...track.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	hadNext := c.q.HasNext()
	c.q.Add(tracks...)
	if !hadNext && c.eng.State().IsActive() {
		c.armPreloadLocked()
	}
}

// RemoveTrack removes the queue entry at index. Removing the track that
// is playing is refused.
func (c *Controller) RemoveTrack(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if index == c.q.CurrentIndex() && c.eng.State().IsActive() {
		return errors.New("controller: cannot remove the playing track")
	}
	if !c.q.RemoveAt(index) {
		return queue.ErrOutOfRange
	}
	if c.eng.State().IsActive() {
		c.armPreloadLocked()
	}
	return nil
}

// ClearQueue stops playback and empties the queue.
func (c *Controller) ClearQueue() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.eng.Stop(); err != nil {
		return err
	}
	c.q.Clear()
	return nil
}

// playCurrentLocked loads and plays the track under the queue cursor.
// Tracks that fail to load are reported and skipped; device errors on
// Play are retried with backoff and, if still failing, returned. prev
// and prevIdx describe where playback came from for the TrackChange
// event; prev == nil suppresses no event, it just means "nothing was
// playing before".
func (c *Controller) playCurrentLocked(prev *track.Track, prevIdx int) error {
	for {
		cur := c.q.Current()
		if cur == nil {
			return ErrQueueEmpty
		}
		if err := c.eng.Load(*cur); err != nil {
			if pipeline.IsTrackFailure(err) {
				c.log.Warn().Msgf("playback: skipping unplayable track: path=%s error=%v", cur.Path, err)
				c.eng.Emit(playback.ErrorEvent{Op: opLoad, Path: cur.Path, Err: err})
				if c.q.Advance() == nil {
					c.eng.Emit(playback.EndOfQueue{})
					return err
				}
				continue
			}
			return err
		}
		if err := c.playWithRetryLocked(cur.Path); err != nil {
			return err
		}
		c.eng.Emit(playback.TrackChange{
			Previous:      prev,
			Current:       cur,
			PreviousIndex: prevIdx,
			Index:         c.q.CurrentIndex(),
		})
		c.armPreloadLocked()
		return nil
	}
}

// playWithRetryLocked starts playback, retrying with doubled delays while
// the device reports busy. The final error is returned once attempts are
// exhausted.
func (c *Controller) playWithRetryLocked(path string) error {
	delay := c.retryDelay
	var err error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		err = c.eng.Play()
		if err == nil {
			return nil
		}
		if !pipeline.IsDeviceBusy(err) {
			return err
		}
		if attempt == c.retryAttempts {
			break
		}
		c.log.Warn().Msgf("playback: device busy, retrying: path=%s attempt=%d/%d delay=%v",
			path, attempt, c.retryAttempts, delay)
		select {
		case <-time.After(delay):
		case <-c.done:
			return ErrClosed
		}
		delay *= 2
	}
	c.eng.Emit(playback.ErrorEvent{Op: opPlay, Path: path, Err: err})
	return err
}

// armPreloadLocked points the pipeline's preload at the queue's derived
// candidate, or clears it when there is none. Preload failures do not
// interrupt the current track; they are reported and the seam falls back
// to a regular end of stream.
func (c *Controller) armPreloadLocked() {
	pt := c.q.PreloadTrack()
	if pt == nil {
		c.eng.ClearPreload()
		return
	}
	if err := c.eng.SetPreload(*pt); err != nil {
		c.log.Warn().Msgf("playback: preload failed: path=%s error=%v", pt.Path, err)
		c.eng.Emit(playback.ErrorEvent{Op: opPreload, Path: pt.Path, Err: err})
	}
}

// forward drains the engine stream and fans events out. It is the only
// goroutine that touches subscriptions, so subscribers observe events in
// exactly the order they entered the stream.
func (c *Controller) forward() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-c.eng.Events():
			if !ok {
				return
			}
			c.handleEvent(ev)
		}
	}
}

func (c *Controller) handleEvent(ev playback.Event) {
	switch e := ev.(type) {
	case playback.TrackChange:
		// Index < 0 marks a gapless switch the engine could not
		// attribute: advance the queue to match and arm the next
		// preload before telling subscribers.
		if e.Index < 0 {
			c.mu.Lock()
			e.PreviousIndex = c.q.CurrentIndex()
			c.q.Advance()
			e.Index = c.q.CurrentIndex()
			c.armPreloadLocked()
			c.mu.Unlock()
		}
		c.fanout(e)
	case playback.ErrorEvent:
		c.fanout(e)
		// A mid-track fault on the active path: skip to the next
		// playable track.
		if e.Op == opPlay && pipeline.IsTrackFailure(e.Err) {
			c.skipAfterFault()
		}
	default:
		c.fanout(ev)
	}
}

func (c *Controller) skipAfterFault() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	prev := c.q.Current()
	prevIdx := c.q.CurrentIndex()
	if c.q.Advance() == nil {
		c.eng.Emit(playback.EndOfQueue{})
		return
	}
	c.log.Warn().Msgf("playback: track faulted, advancing: from=%d to=%d", prevIdx, c.q.CurrentIndex())
	if err := c.playCurrentLocked(prev, prevIdx); err != nil {
		c.log.Warn().Msgf("playback: could not resume after fault: %v", err)
	}
}

func (c *Controller) fanout(ev playback.Event) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.Publish(ev)
	}
}
