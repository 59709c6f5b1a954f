// Package cursor implements list cursor and scroll-offset tracking shared
// by the panels.
package cursor

// Cursor tracks a selected index and the scroll offset of its viewport.
// List length and viewport height are arguments, not state: both change
// whenever the window resizes or the list reloads.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above/below the selection
}

// New returns a cursor that scrolls with the given margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int {
	return c.pos
}

func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the selection by delta, clamping to the list and scrolling
// the viewport along.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.ensureVisible(listLen, height)
}

// Jump selects an absolute index, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// JumpEnd selects the last entry.
func (c *Cursor) JumpEnd(listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = listLen - 1
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

// ClampToBounds pulls the selection back inside a list that shrank.
// Reports whether anything moved.
func (c *Cursor) ClampToBounds(listLen int) bool {
	if listLen == 0 {
		moved := c.pos != 0 || c.offset != 0
		c.pos, c.offset = 0, 0
		return moved
	}

	old := c.pos
	c.pos = clamp(c.pos, listLen-1)
	return c.pos != old
}

// VisibleRange returns the half-open index range [start, end) currently in
// the viewport.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// Reset returns to the top with no scroll.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// HandleKey applies the vim-style navigation keys and reports whether the
// key was one of them, so callers know to refresh whatever the selection
// drives.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.Reset()
	case "G", "end":
		c.JumpEnd(listLen, height)
	case "ctrl+d":
		c.Move(height/2, listLen, height)
	case "ctrl+u":
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
