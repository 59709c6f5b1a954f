package ui

// Base carries the size and focus state every panel needs. Panels embed it
// so the app model can drive layout and focus through one interface.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize records the panel's outer dimensions, borders included.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int {
	return b.width
}

func (b Base) Height() int {
	return b.height
}

// ListHeight returns the rows left for list content once overhead
// (borders, headers) is subtracted. Never negative.
func (b Base) ListHeight(overhead int) int {
	if h := b.height - overhead; h > 0 {
		return h
	}
	return 0
}
