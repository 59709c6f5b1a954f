package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extFLAC = ".flac"
	extMP3  = ".mp3"
	extWAV  = ".wav"
)

// StreamOpener opens a decode path for an audio file. Injected so tests can
// substitute synthetic streams for real files.
type StreamOpener func(path string) (beep.StreamSeekCloser, beep.Format, error)

// OpenStream decodes a local audio file into a seekable sample stream.
// Decoders pass samples through at the source's native rate and depth; no
// conversion stage is ever inserted here.
func OpenStream(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case extFLAC, extMP3, extWAV:
	default:
		return nil, beep.Format{}, &DecodeError{Path: path, Err: fmt.Errorf("unsupported format %q", ext)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, &IOError{Path: path, Err: err}
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extFLAC:
		// Some taggers prepend an ID3v2 tag that the FLAC decoder rejects.
		if err := skipID3v2(f); err != nil {
			f.Close()
			return nil, beep.Format{}, &IOError{Path: path, Err: err}
		}
		streamer, format, err = flac.Decode(f)
	case extMP3:
		streamer, format, err = decodeGoMP3(f)
	case extWAV:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, &DecodeError{Path: path, Err: err}
	}
	return streamer, format, nil
}

// skipID3v2 skips an ID3v2 tag if one is prepended to the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer in bytes 6-9, 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
