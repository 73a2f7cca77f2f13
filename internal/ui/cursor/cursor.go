// Package cursor provides cursor and scroll tracking for list views.
package cursor

// Cursor tracks the selected row and scroll offset of a scrollable list.
// List length and viewport height are passed per call since both change with
// filtering and terminal resizes.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above/below the cursor
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the current cursor position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the index of the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the cursor by delta rows, clamped to the list bounds.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.ensureVisible(listLen, height)
}

// Jump sets the cursor to an absolute position, clamped to the list bounds.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// JumpStart moves the cursor to the first row.
func (c *Cursor) JumpStart() {
	c.pos = 0
	c.offset = 0
}

// JumpEnd moves the cursor to the last row.
func (c *Cursor) JumpEnd(listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = listLen - 1
	c.ensureVisible(listLen, height)
}

// ClampToBounds pulls the cursor back into range after the list shrank.
func (c *Cursor) ClampToBounds(listLen int) {
	if listLen == 0 {
		c.pos = 0
		c.offset = 0
		return
	}
	c.pos = clamp(c.pos, listLen-1)
}

// EnsureVisible adjusts the scroll offset to keep the cursor on screen.
// Call it after external position changes.
func (c *Cursor) EnsureVisible(listLen, height int) {
	c.ensureVisible(listLen, height)
}

func (c *Cursor) ensureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}

	if c.pos < c.offset+c.margin {
		c.offset = max(c.pos-c.margin, 0)
	}
	if c.pos >= c.offset+height-c.margin {
		c.offset = c.pos - height + c.margin + 1
	}

	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// VisibleRange returns the [start, end) row indices to render.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey applies list navigation keys and reports whether the key was
// one. Supported: j/down, k/up, g/home, G/end, ctrl+d/ctrl+u half pages.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.JumpStart()
	case "G", "end":
		c.JumpEnd(listLen, height)
	case "ctrl+d", "pgdown":
		c.Move(height/2, listLen, height)
	case "ctrl+u", "pgup":
		c.Move(-height/2, listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
