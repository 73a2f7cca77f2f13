// Package ui provides shared building blocks for chime's terminal interface.
package ui

// Base provides size and focus management for UI components.
// Embed it in component models to get the standard methods.
type Base struct {
	width, height int
	focused       bool
}

// SetFocused sets whether the component receives key input.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns whether the component is focused.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// ListHeight returns the height available for list rows after overhead.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
