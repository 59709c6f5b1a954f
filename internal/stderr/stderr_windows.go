//go:build windows

// No-op capture: nothing on Windows writes raw fd-2 noise the way ALSA
// does, so the pipe redirection is not needed there.
package stderr

import "os"

// Messages never receives anything on Windows.
var Messages = make(chan string)

func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func Stop() {}
