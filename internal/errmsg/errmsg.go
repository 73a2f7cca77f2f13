// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup operations
	OpInitialize  Op = "initialize application"
	OpConfigLoad  Op = "load configuration"
	OpDeviceInit  Op = "initialize audio device"
	OpRemoteStart Op = "start remote control server"

	// Library operations
	OpLibraryScan Op = "scan library"
	OpLibraryLoad Op = "load library"
	OpCacheOpen   Op = "open library cache"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// File operations
	OpFileLoad Op = "load file"
	OpTagRead  Op = "read file tags"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
