// Package track defines the immutable track model shared by the library,
// queue, and playback pipeline.
package track

import "time"

// Track describes one playable audio file. Instances are read from the
// library and never mutated by the playback engine.
type Track struct {
	ID          int64
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	DiscNumber  int
	Format      string // container/codec tag: "FLAC", "MP3", "WAV"
	BitDepth    int    // bits per sample of the source stream
	SampleRate  int    // frames per second of the source stream
	Duration    time.Duration
}

// DisplayTitle returns the title, falling back to the path when untagged.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Path
}
