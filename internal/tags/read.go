package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Supported reports whether the file extension is a readable format.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV:
		return true
	default:
		return false
	}
}

// Read reads tag metadata from a music file. It returns only tag
// metadata, not audio stream properties. Files without readable tags
// (WAV, broken containers) get a minimal tag derived from the filename.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fallbackTag(path), nil
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	trackNum, totalTracks := m.Track()
	disc, totalDiscs := m.Disc()

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}

	return &Tag{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: trackNum,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
		Date:        yearToDate(m.Year()),
	}, nil
}

func fallbackTag(path string) *Tag {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	return &Tag{Path: path, Title: title}
}

func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
