//go:build !windows

// Package stderr captures writes to file descriptor 2. The ALSA C library
// prints configuration warnings straight to fd 2, bypassing os.Stderr, and
// those lines would land in the middle of the TUI. While capture is active
// the lines are delivered on Messages instead so they can be logged.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Messages carries the captured lines. Closed by Stop.
var Messages = make(chan string, 128)

var (
	savedFd int
	rd, wr  *os.File
	active  bool
)

// Start redirects fd 2 into a pipe and begins draining it. Call before
// anything initializes ALSA. Failure is non-fatal: without capture the
// noise simply goes to the terminal.
func Start() error {
	if active {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	savedFd, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(savedFd)
		r.Close()
		w.Close()
		return err
	}

	rd, wr = r, w
	active = true

	go drain(r)
	return nil
}

func drain(r *os.File) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case Messages <- line:
		default:
			// Nobody is reading; dropping beats blocking the pipe.
		}
	}
}

// WriteOriginal bypasses the capture and writes to the real stderr. Used
// for fatal startup errors that must stay visible.
func WriteOriginal(msg string) {
	if savedFd > 0 {
		_, _ = syscall.Write(savedFd, []byte(msg))
	}
}

// Stop restores fd 2 and closes Messages.
func Stop() {
	if !active {
		return
	}
	_ = syscall.Dup2(savedFd, int(os.Stderr.Fd()))
	_ = syscall.Close(savedFd)
	wr.Close()
	rd.Close()
	close(Messages)
	active = false
}
