package tags

import (
	"github.com/tlacroix/aria/internal/track"
)

// Probe combines tag metadata and stream properties into a playable
// track description.
func Probe(path string) (track.Track, error) {
	t, err := Read(path)
	if err != nil {
		return track.Track{}, err
	}
	info, err := ReadAudioInfo(path)
	if err != nil {
		return track.Track{}, err
	}

	return track.Track{
		Path:        path,
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		DiscNumber:  t.DiscNumber,
		Format:      info.Format,
		SampleRate:  info.SampleRate,
		BitDepth:    info.BitDepth,
		Duration:    info.Duration,
	}, nil
}
