package device

import (
	"fmt"
	"sync"
	"time"
)

// FakeCatalog is an in-memory catalog for tests and headless builds. It
// enforces the same exclusivity rules as the system catalogs but discards
// all audio. WriteDelay paces handle writes so tests can interleave
// commands with a running render loop.
type FakeCatalog struct {
	devices []Descriptor
	reg     *registry

	// WriteDelay is applied to every Write on handles opened afterwards.
	WriteDelay time.Duration
}

// NewFakeCatalog creates a catalog exposing the given devices.
func NewFakeCatalog(devices ...Descriptor) *FakeCatalog {
	return &FakeCatalog{devices: devices, reg: newRegistry()}
}

// Devices returns a copy of the device list.
func (c *FakeCatalog) Devices() []Descriptor {
	out := make([]Descriptor, len(c.devices))
	copy(out, c.devices)
	return out
}

// Lookup finds a device by id.
func (c *FakeCatalog) Lookup(id string) (Descriptor, bool) {
	for _, d := range c.devices {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Open claims the device and returns a handle that counts written frames.
func (c *FakeCatalog) Open(id string, f Format) (Handle, error) {
	desc, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDevice, id)
	}
	if !desc.Supports(f) {
		return nil, fmt.Errorf("%w: %s does not accept %d Hz / %d-bit",
			ErrUnsupportedFormat, id, f.SampleRate, f.BitDepth)
	}
	if !c.reg.claim(id) {
		return nil, fmt.Errorf("%w: %s", ErrBusy, id)
	}
	return &FakeHandle{catalog: c, id: id, format: f, delay: c.WriteDelay}, nil
}

// Held reports whether the device is currently open. Test helper.
func (c *FakeCatalog) Held(id string) bool {
	return c.reg.held(id)
}

// FakeHandle records everything written to it.
type FakeHandle struct {
	mu      sync.Mutex
	catalog *FakeCatalog
	id      string
	format  Format
	delay   time.Duration
	frames  int
	reconfs []Format
	paused  bool
	closed  bool
}

func (h *FakeHandle) Write(samples [][2]float64) error {
	if h.delay > 0 {
		time.Sleep(h.delay)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.frames += len(samples)
	return nil
}

func (h *FakeHandle) Reconfigure(f Format) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.format = f
	h.reconfs = append(h.reconfs, f)
	return nil
}

func (h *FakeHandle) Pause() {
	h.mu.Lock()
	h.paused = true
	h.mu.Unlock()
}

func (h *FakeHandle) Resume() {
	h.mu.Lock()
	h.paused = false
	h.mu.Unlock()
}

func (h *FakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.catalog.reg.release(h.id)
	return nil
}

// Test observers.

func (h *FakeHandle) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

func (h *FakeHandle) Format() Format {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.format
}

func (h *FakeHandle) Reconfigures() []Format {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Format, len(h.reconfs))
	copy(out, h.reconfs)
	return out
}

func (h *FakeHandle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
