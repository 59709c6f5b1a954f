package pipeline

import (
	"errors"
	"fmt"

	"github.com/tlacroix/aria/internal/device"
)

// DeviceError wraps a failure of the output device: busy, unsupported
// format, unknown or removed device.
type DeviceError struct {
	Device string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %s: %v", e.Device, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// DecodeError wraps a corrupt stream or unsupported codec.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError wraps a missing or unreadable file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// StateError reports an operation requested in a state that does not allow
// it, including out-of-range seeks. Never retried; it signals caller misuse.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not valid in state %s", e.Op, e.State)
}

// IsDeviceBusy reports whether err was caused by the device being held by
// another exclusive client. The controller retries these with backoff.
func IsDeviceBusy(err error) bool {
	return errors.Is(err, device.ErrBusy)
}

// IsTrackFailure reports whether err is scoped to a single track (decode,
// file IO, or format mismatch). The controller skips past these.
func IsTrackFailure(err error) bool {
	var de *DecodeError
	var ioe *IOError
	if errors.As(err, &de) || errors.As(err, &ioe) {
		return true
	}
	return errors.Is(err, device.ErrUnsupportedFormat)
}
