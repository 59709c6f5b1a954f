// Package tags reads metadata and audio stream properties from music
// files. Tag metadata and stream properties come from different places
// (container tags vs. codec headers), so they are read separately and
// combined by Probe.
package tags

import "time"

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag contains music file tag metadata.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string

	TrackNumber int
	TotalTracks int
	DiscNumber  int
	TotalDiscs  int

	Date string // Release date (YYYY-MM-DD or YYYY)
}

// AudioInfo contains audio stream properties.
type AudioInfo struct {
	Duration   time.Duration
	Format     string // "FLAC", "MP3", "WAV"
	SampleRate int
	BitDepth   int
}
