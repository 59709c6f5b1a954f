// Package queue holds the ordered list of tracks scheduled for playback
// and the two cursors over it: the current track and the derived preload
// candidate. It knows nothing about audio; the controller reads the
// cursors and drives the pipeline accordingly.
package queue

import (
	"errors"
	"sync"

	"github.com/tlacroix/aria/internal/track"
)

// ErrOutOfRange is returned by JumpTo for an index outside the queue.
var ErrOutOfRange = errors.New("queue: index out of range")

// Queue is an ordered track list with a current cursor. The preload index
// is never stored independently: it is recomputed as current+1 on every
// mutation, so it can never point at a stale position.
type Queue struct {
	mu      sync.RWMutex
	tracks  []track.Track
	current int // -1 if nothing selected
	preload int // always derived from current
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{current: -1, preload: -1}
}

// syncPreload derives the preload cursor from the current one. Caller
// holds mu.
func (q *Queue) syncPreload() {
	if q.current >= 0 && q.current+1 < len(q.tracks) {
		q.preload = q.current + 1
	} else {
		q.preload = -1
	}
}

// Replace swaps the queue contents and moves the cursor to the first
// track. It returns that track, or nil for an empty replacement.
func (q *Queue) Replace(tracks []track.Track) *track.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append([]track.Track(nil), tracks...)
	if len(q.tracks) == 0 {
		q.current = -1
	} else {
		q.current = 0
	}
	q.syncPreload()
	return q.currentLocked()
}

// Add appends tracks without moving the cursor.
func (q *Queue) Add(tracks ...track.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, tracks...)
	q.syncPreload()
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = nil
	q.current = -1
	q.syncPreload()
}

// RemoveAt removes the track at index, keeping the cursor on the same
// track when possible. Removing the current track leaves the cursor in
// place, now pointing at the former successor (clamped at the end).
func (q *Queue) RemoveAt(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.tracks) {
		return false
	}
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	switch {
	case q.current > index:
		q.current--
	case q.current == index && q.current >= len(q.tracks):
		q.current = len(q.tracks) - 1
	}
	q.syncPreload()
	return true
}

// Advance moves the cursor to the next track and returns it, or nil when
// the current track is the last one (the cursor does not move).
func (q *Queue) Advance() *track.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current < 0 || q.current+1 >= len(q.tracks) {
		return nil
	}
	q.current++
	q.syncPreload()
	return q.currentLocked()
}

// Previous moves the cursor to the preceding track and returns it. At
// index 0 the cursor stays put and the current track is returned, which
// callers use to restart it from the beginning.
func (q *Queue) Previous() *track.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current < 0 {
		return nil
	}
	if q.current > 0 {
		q.current--
		q.syncPreload()
	}
	return q.currentLocked()
}

// JumpTo moves the cursor to index and returns the track there.
func (q *Queue) JumpTo(index int) (*track.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.tracks) {
		return nil, ErrOutOfRange
	}
	q.current = index
	q.syncPreload()
	return q.currentLocked(), nil
}

// Current returns a copy of the track under the cursor, or nil.
func (q *Queue) Current() *track.Track {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.currentLocked()
}

func (q *Queue) currentLocked() *track.Track {
	if q.current < 0 || q.current >= len(q.tracks) {
		return nil
	}
	t := q.tracks[q.current]
	return &t
}

// PreloadTrack returns a copy of the track at the preload cursor, or nil
// when the current track has no successor.
func (q *Queue) PreloadTrack() *track.Track {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.preload < 0 {
		return nil
	}
	t := q.tracks[q.preload]
	return &t
}

// CurrentIndex returns the cursor position (-1 if none).
func (q *Queue) CurrentIndex() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.current
}

// PreloadIndex returns the derived preload position (-1 if none).
func (q *Queue) PreloadIndex() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.preload
}

// Tracks returns a copy of the queue contents.
func (q *Queue) Tracks() []track.Track {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]track.Track(nil), q.tracks...)
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.tracks)
}

// IsEmpty reports whether the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// HasNext reports whether a track follows the current one.
func (q *Queue) HasNext() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.current >= 0 && q.current+1 < len(q.tracks)
}
