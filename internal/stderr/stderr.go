//go:build !windows

// Package stderr redirects file descriptor 2 while the TUI owns the
// terminal. ALSA and the AAC decoder write warnings straight to fd 2,
// which would otherwise tear through the rendered interface.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Lines receives the captured stderr output, one trimmed line at a time.
var Lines = make(chan string, 100)

var (
	savedFd   int
	readEnd   *os.File
	writeEnd  *os.File
	capturing bool
)

// Capture redirects fd 2 into a pipe and forwards its lines to Lines.
// Call before any audio library initialization. Failure is non-fatal:
// output simply keeps going to the real stderr.
func Capture() error {
	if capturing {
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

	readEnd = r
	writeEnd = w
	capturing = true

	go func() {
		sc := bufio.NewScanner(readEnd)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case Lines <- line:
			default:
				// Drop rather than block the pipe reader.
			}
		}
	}()

	return nil
}

// WriteOriginal writes to the saved stderr, bypassing the capture.
// Fatal diagnostics use this so they stay visible under the TUI.
func WriteOriginal(msg string) {
	if savedFd > 0 {
		_, _ = syscall.Write(savedFd, []byte(msg))
	}
}

// Restore puts fd 2 back and closes the pipe. Call once on exit.
func Restore() {
	if !capturing {
		return
	}

	_ = syscall.Dup2(savedFd, int(os.Stderr.Fd()))
	_ = syscall.Close(savedFd)

	writeEnd.Close()
	readEnd.Close()

	close(Lines)
	capturing = false
}
