//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does
// not write to file descriptor 2.
package stderr

import "os"

// Lines is never written to on Windows.
var Lines = make(chan string)

// Capture is a no-op on Windows.
func Capture() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Restore is a no-op on Windows.
func Restore() {}
