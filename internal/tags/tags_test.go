package tags

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestWAV writes a minimal PCM WAV file with the given number of
// stereo 16-bit frames.
func createTestWAV(t *testing.T, dir, name string, sampleRate, frames int) string {
	t.Helper()
	path := filepath.Join(dir, name)

	dataSize := frames * 4 // stereo, 16-bit
	buf := make([]byte, 0, 44+dataSize)
	u32 := func(v int) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v))
		return b
	}
	u16 := func(v int) []byte {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(v))
		return b
	}

	buf = append(buf, "RIFF"...)
	buf = append(buf, u32(36+dataSize)...)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM
	buf = append(buf, u16(2)...) // stereo
	buf = append(buf, u32(sampleRate)...)
	buf = append(buf, u32(sampleRate*4)...) // byte rate
	buf = append(buf, u16(4)...)            // block align
	buf = append(buf, u16(16)...)           // bits per sample
	buf = append(buf, "data"...)
	buf = append(buf, u32(dataSize)...)
	buf = append(buf, make([]byte, dataSize)...)

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("failed to create test WAV: %v", err)
	}
	return path
}

// createTestMP3 writes a minimal MP3 frame (MPEG1 Layer3, 128kbps,
// 44100Hz, stereo).
func createTestMP3(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.mp3")

	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00

	if err := os.WriteFile(path, mp3Frame, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}
	return path
}

// createTestFLAC writes a FLAC file containing only a streaminfo block:
// 44100 Hz, stereo, 16-bit, totalSamples samples.
func createTestFLAC(t *testing.T, dir string, totalSamples int64) string {
	t.Helper()
	path := filepath.Join(dir, "test.flac")

	info := make([]byte, 34)
	// min/max block size
	info[0], info[1] = 0x10, 0x00
	info[2], info[3] = 0x10, 0x00
	// sample rate 44100 (0x0AC44), 20 bits from byte 10
	info[10] = 0x0A
	info[11] = 0xC4
	// high nibble: low 4 bits of sample rate; then channels-1 (1), then
	// top bit of bits-per-sample-1 (15 -> 0)
	info[12] = 0x40 | 0x02
	// low 4 bits of bits-per-sample-1, then top 4 bits of total samples
	info[13] = 0xF0 | byte(totalSamples>>32&0x0F)
	info[14] = byte(totalSamples >> 24)
	info[15] = byte(totalSamples >> 16)
	info[16] = byte(totalSamples >> 8)
	info[17] = byte(totalSamples)

	buf := []byte("fLaC")
	buf = append(buf, 0x80, 0x00, 0x00, 34) // last-block flag, type 0, length
	buf = append(buf, info...)
	// Audio frame sync code; the parser requires at least one frame header
	// after the metadata blocks.
	buf = append(buf, 0xFF, 0xF8)

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("failed to create test FLAC: %v", err)
	}
	return path
}

func TestSupported(t *testing.T) {
	for path, want := range map[string]bool{
		"/music/a.flac": true,
		"/music/a.MP3":  true,
		"/music/a.wav":  true,
		"/music/a.ogg":  false,
		"/music/a.txt":  false,
	} {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestReadAudioInfoFLAC(t *testing.T) {
	path := createTestFLAC(t, t.TempDir(), 44100)

	info, err := ReadAudioInfo(path)
	if err != nil {
		t.Fatalf("ReadAudioInfo: %v", err)
	}
	if info.Format != "FLAC" {
		t.Errorf("Format = %q, want FLAC", info.Format)
	}
	if info.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", info.SampleRate)
	}
	if info.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", info.BitDepth)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
}

func TestReadAudioInfoMP3(t *testing.T) {
	path := createTestMP3(t, t.TempDir())

	info, err := ReadAudioInfo(path)
	if err != nil {
		t.Fatalf("ReadAudioInfo: %v", err)
	}
	if info.Format != "MP3" || info.SampleRate != 44100 || info.BitDepth != 16 {
		t.Errorf("info = %+v, want MP3 44100/16", info)
	}
}

func TestReadAudioInfoWAV(t *testing.T) {
	path := createTestWAV(t, t.TempDir(), "test.wav", 48000, 4800)

	info, err := ReadAudioInfo(path)
	if err != nil {
		t.Fatalf("ReadAudioInfo: %v", err)
	}
	if info.Format != "WAV" || info.SampleRate != 48000 || info.BitDepth != 16 {
		t.Errorf("info = %+v, want WAV 48000/16", info)
	}
	if info.Duration != 100*time.Millisecond {
		t.Errorf("Duration = %v, want 100ms", info.Duration)
	}
}

func TestReadAudioInfoUnsupported(t *testing.T) {
	if _, err := ReadAudioInfo(filepath.Join(t.TempDir(), "a.ogg")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestReadFallsBackToFilename(t *testing.T) {
	path := createTestWAV(t, t.TempDir(), "My Song.wav", 44100, 100)

	tag, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tag.Title != "My Song" {
		t.Errorf("Title = %q, want %q", tag.Title, "My Song")
	}
}

func TestProbe(t *testing.T) {
	path := createTestWAV(t, t.TempDir(), "Probe Me.wav", 44100, 441)

	tr, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if tr.Path != path {
		t.Errorf("Path = %q, want %q", tr.Path, path)
	}
	if tr.Title != "Probe Me" {
		t.Errorf("Title = %q, want %q", tr.Title, "Probe Me")
	}
	if tr.Format != "WAV" || tr.SampleRate != 44100 || tr.BitDepth != 16 {
		t.Errorf("stream props = %s %d/%d", tr.Format, tr.SampleRate, tr.BitDepth)
	}
	if tr.Duration != 10*time.Millisecond {
		t.Errorf("Duration = %v, want 10ms", tr.Duration)
	}
}
