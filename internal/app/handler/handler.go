// Package handler chains prioritized key handlers.
package handler

import tea "github.com/charmbracelet/bubbletea"

// Result reports whether a handler consumed the key, and any follow-up
// command.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled lets the next handler in the chain try the key.
var NotHandled = Result{}

// HandledNoCmd consumes the key without a follow-up command.
var HandledNoCmd = Result{Handled: true}

// Handled consumes the key with a follow-up command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Func tries to handle the current key.
type Func func() Result

// Chain runs handlers in order and returns the first consuming result,
// or NotHandled when the key falls through every handler.
func Chain(handlers ...Func) Result {
	for _, h := range handlers {
		if r := h(); r.Handled {
			return r
		}
	}
	return NotHandled
}
