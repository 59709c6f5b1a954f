// Package device models audio output devices and their exclusive ownership.
//
// A Catalog enumerates devices together with the (sample rate, bit depth)
// pairs they accept without internal conversion. Opening a device claims it
// exclusively: a second open of the same device fails with ErrBusy until the
// first handle is closed. The playback pipeline is the only intended holder
// of a Handle.
package device

import "errors"

var (
	// ErrBusy is returned when a device is already exclusively held.
	ErrBusy = errors.New("device busy")
	// ErrUnknownDevice is returned when the requested device id does not exist.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrUnsupportedFormat is returned when a device cannot accept the
	// requested format without conversion.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrClosed is returned when writing to a closed handle.
	ErrClosed = errors.New("device handle closed")
)

// Format is one exact output configuration. Both fields must match the
// source track for playback to be bit-perfect.
type Format struct {
	SampleRate int
	BitDepth   int
}

// Descriptor identifies a device and the formats it accepts natively.
type Descriptor struct {
	ID      string
	Name    string
	Formats []Format
}

// Supports reports whether the device accepts f without conversion.
func (d Descriptor) Supports(f Format) bool {
	for _, df := range d.Formats {
		if df == f {
			return true
		}
	}
	return false
}

// Handle is an exclusively held, open output device.
//
// Write blocks until the device has consumed the block; this backpressure is
// what paces the pipeline's render loop. Reconfigure changes the output
// format in place, keeping the exclusive claim, so a gapless transition
// between tracks of different formats never releases the device.
type Handle interface {
	Write(samples [][2]float64) error
	Reconfigure(f Format) error
	Pause()
	Resume()
	Close() error
}

// Catalog enumerates devices and opens them for exclusive playback.
type Catalog interface {
	Devices() []Descriptor
	Lookup(id string) (Descriptor, bool)
	// Open claims the device exclusively and configures it for f.
	// Fails with ErrUnknownDevice, ErrUnsupportedFormat or ErrBusy.
	Open(id string, f Format) (Handle, error)
}
