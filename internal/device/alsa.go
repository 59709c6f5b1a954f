//go:build linux && cgo

package device

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* ariaOpenPCM(const char* name, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, name, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int ariaSetupPCM(snd_pcm_t* handle, unsigned int rate, snd_pcm_format_t format) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, format);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, 2);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int ariaTestFormat(snd_pcm_t* handle, unsigned int rate, snd_pcm_format_t format) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_test_format(handle, params, format);
    if (err < 0) return err;

    return snd_pcm_hw_params_test_rate(handle, params, rate, 0);
}

static int ariaWritePCM(snd_pcm_t* handle, void* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void ariaClosePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// probedRates and probedDepths form the capability grid offered to the
// pipeline. Devices answering snd_pcm_hw_params_test_* for a pair advertise
// it; everything else is rejected rather than converted.
var (
	probedRates  = []int{44100, 48000, 88200, 96000, 176400, 192000}
	probedDepths = []int{16, 24, 32}
)

// AlsaCatalog enumerates direct hw: PCM devices. hw: devices bypass the dmix
// mixing layer, so an open handle is exclusive and conversion-free.
type AlsaCatalog struct {
	devices []Descriptor
	reg     *registry
}

// NewSystemCatalog probes ALSA cards and returns a catalog of playback
// devices. Fails if no card exposes a usable playback PCM.
func NewSystemCatalog() (Catalog, error) {
	var devices []Descriptor
	card := C.int(-1)
	for {
		if C.snd_card_next(&card) < 0 || card < 0 {
			break
		}
		id := fmt.Sprintf("hw:%d,0", int(card))
		formats := probeFormats(id)
		if len(formats) == 0 {
			continue
		}
		var namePtr *C.char
		name := id
		if C.snd_card_get_name(card, &namePtr) >= 0 && namePtr != nil {
			name = C.GoString(namePtr)
			C.free(unsafe.Pointer(namePtr))
		}
		devices = append(devices, Descriptor{ID: id, Name: name, Formats: formats})
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("alsa: no playback devices found")
	}
	return &AlsaCatalog{devices: devices, reg: newRegistry()}, nil
}

func probeFormats(id string) []Format {
	cname := C.CString(id)
	defer C.free(unsafe.Pointer(cname))

	var cerr C.int
	handle := C.ariaOpenPCM(cname, &cerr)
	if cerr < 0 {
		return nil
	}
	defer C.snd_pcm_close(handle)

	var formats []Format
	for _, depth := range probedDepths {
		pcmFmt := alsaFormat(depth)
		for _, rate := range probedRates {
			if C.ariaTestFormat(handle, C.uint(rate), pcmFmt) >= 0 {
				formats = append(formats, Format{SampleRate: rate, BitDepth: depth})
			}
		}
	}
	return formats
}

func alsaFormat(bitDepth int) C.snd_pcm_format_t {
	switch bitDepth {
	case 16:
		return C.SND_PCM_FORMAT_S16_LE
	case 24:
		return C.SND_PCM_FORMAT_S24_3LE
	default:
		return C.SND_PCM_FORMAT_S32_LE
	}
}

// Devices returns a copy of the probed device list.
func (c *AlsaCatalog) Devices() []Descriptor {
	out := make([]Descriptor, len(c.devices))
	copy(out, c.devices)
	return out
}

// Lookup finds a device by id.
func (c *AlsaCatalog) Lookup(id string) (Descriptor, bool) {
	for _, d := range c.devices {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Open claims the device and configures it for the exact format f.
func (c *AlsaCatalog) Open(id string, f Format) (Handle, error) {
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

	h := &alsaHandle{catalog: c, id: id}
	if err := h.configure(f); err != nil {
		c.reg.release(id)
		return nil, err
	}
	return h, nil
}

type alsaHandle struct {
	mu      sync.Mutex
	catalog *AlsaCatalog
	id      string
	pcm     *C.snd_pcm_t
	format  Format
	paused  bool
	closed  bool
	pcmBuf  []byte
}

func (h *alsaHandle) configure(f Format) error {
	cname := C.CString(h.id)
	defer C.free(unsafe.Pointer(cname))

	var cerr C.int
	pcm := C.ariaOpenPCM(cname, &cerr)
	if cerr < 0 {
		return fmt.Errorf("%w: %s: %s", ErrBusy, h.id, C.GoString(C.snd_strerror(cerr)))
	}
	if rc := C.ariaSetupPCM(pcm, C.uint(f.SampleRate), alsaFormat(f.BitDepth)); rc < 0 {
		C.snd_pcm_close(pcm)
		return fmt.Errorf("%w: %s: %s", ErrUnsupportedFormat, h.id,
			C.GoString(C.snd_strerror(rc)))
	}
	h.pcm = pcm
	h.format = f
	return nil
}

func (h *alsaHandle) Write(samples [][2]float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if len(samples) == 0 {
		return nil
	}

	buf := h.pack(samples)
	frames := C.ariaWritePCM(h.pcm, unsafe.Pointer(&buf[0]), C.int(len(samples)))
	if frames < 0 {
		if frames == -C.EPIPE {
			// Underrun: recover and retry once.
			C.snd_pcm_prepare(h.pcm)
			frames = C.ariaWritePCM(h.pcm, unsafe.Pointer(&buf[0]), C.int(len(samples)))
		}
		if frames < 0 {
			return fmt.Errorf("alsa: write %s: %s", h.id,
				C.GoString(C.snd_strerror(C.int(frames))))
		}
	}
	return nil
}

// pack quantizes float samples to the device's integer format. The track was
// decoded at the same depth, so the round trip reproduces the source words.
func (h *alsaHandle) pack(samples [][2]float64) []byte {
	bytesPerSample := h.format.BitDepth / 8
	need := len(samples) * 2 * bytesPerSample
	if cap(h.pcmBuf) < need {
		h.pcmBuf = make([]byte, need)
	}
	buf := h.pcmBuf[:need]

	i := 0
	for _, fr := range samples {
		for ch := range 2 {
			v := clamp(fr[ch])
			switch h.format.BitDepth {
			case 16:
				s := int16(v * 32767)
				buf[i] = byte(s)
				buf[i+1] = byte(s >> 8)
			case 24:
				s := int32(v * 8388607)
				buf[i] = byte(s)
				buf[i+1] = byte(s >> 8)
				buf[i+2] = byte(s >> 16)
			default:
				s := int32(v * 2147483647)
				buf[i] = byte(s)
				buf[i+1] = byte(s >> 8)
				buf[i+2] = byte(s >> 16)
				buf[i+3] = byte(s >> 24)
			}
			i += bytesPerSample
		}
	}
	return buf
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (h *alsaHandle) Reconfigure(f Format) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if f == h.format {
		return nil
	}
	desc, _ := h.catalog.Lookup(h.id)
	if !desc.Supports(f) {
		return fmt.Errorf("%w: %s does not accept %d Hz / %d-bit",
			ErrUnsupportedFormat, h.id, f.SampleRate, f.BitDepth)
	}
	// Reopen the PCM at the new format without releasing the registry claim,
	// so no other client can slip in between tracks.
	C.ariaClosePCM(h.pcm)
	h.pcm = nil
	return h.configure(f)
}

func (h *alsaHandle) Pause() {
	h.mu.Lock()
	h.paused = true
	h.mu.Unlock()
}

func (h *alsaHandle) Resume() {
	h.mu.Lock()
	h.paused = false
	h.mu.Unlock()
}

func (h *alsaHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	C.ariaClosePCM(h.pcm)
	h.pcm = nil
	h.catalog.reg.release(h.id)
	return nil
}
