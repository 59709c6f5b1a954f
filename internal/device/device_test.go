package device

import (
	"errors"
	"testing"
)

func testDescriptor() Descriptor {
	return Descriptor{
		ID:   "fake:0",
		Name: "Fake DAC",
		Formats: []Format{
			{SampleRate: 44100, BitDepth: 16},
			{SampleRate: 96000, BitDepth: 24},
		},
	}
}

func TestDescriptor_Supports(t *testing.T) {
	d := testDescriptor()

	if !d.Supports(Format{SampleRate: 44100, BitDepth: 16}) {
		t.Error("expected 44.1/16 to be supported")
	}
	if d.Supports(Format{SampleRate: 44100, BitDepth: 24}) {
		t.Error("expected 44.1/24 to be unsupported")
	}
	if d.Supports(Format{SampleRate: 48000, BitDepth: 16}) {
		t.Error("expected 48/16 to be unsupported")
	}
}

func TestFakeCatalog_OpenUnknownDevice(t *testing.T) {
	c := NewFakeCatalog(testDescriptor())

	_, err := c.Open("fake:9", Format{SampleRate: 44100, BitDepth: 16})
	if !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("err = %v, want ErrUnknownDevice", err)
	}
}

func TestFakeCatalog_OpenUnsupportedFormat(t *testing.T) {
	c := NewFakeCatalog(testDescriptor())

	_, err := c.Open("fake:0", Format{SampleRate: 192000, BitDepth: 32})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFakeCatalog_ExclusiveOpen(t *testing.T) {
	c := NewFakeCatalog(testDescriptor())
	f := Format{SampleRate: 44100, BitDepth: 16}

	h, err := c.Open("fake:0", f)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	if _, err := c.Open("fake:0", f); !errors.Is(err, ErrBusy) {
		t.Errorf("second Open err = %v, want ErrBusy", err)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if c.Held("fake:0") {
		t.Error("device still held after Close")
	}

	// Reopen after close succeeds.
	h2, err := c.Open("fake:0", f)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	h2.Close()
}

func TestFakeHandle_ReconfigureKeepsClaim(t *testing.T) {
	c := NewFakeCatalog(testDescriptor())

	h, err := c.Open("fake:0", Format{SampleRate: 44100, BitDepth: 16})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	fh := h.(*FakeHandle)
	next := Format{SampleRate: 96000, BitDepth: 24}
	if err := h.Reconfigure(next); err != nil {
		t.Fatalf("Reconfigure failed: %v", err)
	}
	if fh.Format() != next {
		t.Errorf("format = %v, want %v", fh.Format(), next)
	}
	if !c.Held("fake:0") {
		t.Error("claim lost across Reconfigure")
	}
}

func TestFakeHandle_WriteAfterClose(t *testing.T) {
	c := NewFakeCatalog(testDescriptor())

	h, err := c.Open("fake:0", Format{SampleRate: 44100, BitDepth: 16})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	h.Close()

	if err := h.Write(make([][2]float64, 16)); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after close err = %v, want ErrClosed", err)
	}
}
