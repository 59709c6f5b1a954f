package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean passes through", "So What", "So What"},
		{"control chars stripped", "bad\x00\x1bname", "badname"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp becomes space", "Miles Davis", "Miles Davis"},
		{"invalid utf8 dropped", "ok\x85here", "okhere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "Take Five", 20, "Take Five"},
		{"exact", "Take Five", 9, "Take Five"},
		{"cut", "Blue in Green", 10, "Blue in..."},
		{"wide runes", "坂本龍一", 5, "坂..."},
		{"empty", "", 8, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	if got := TruncateEllipsis("Blue in Green", 8); got != "Blue in…" {
		t.Errorf("TruncateEllipsis = %q, want %q", got, "Blue in…")
	}
	if got := TruncateEllipsis("short", 10); got != "short" {
		t.Errorf("TruncateEllipsis = %q, want unchanged", got)
	}
}

func TestPad(t *testing.T) {
	if got := Pad("hi", 5); got != "hi   " {
		t.Errorf("Pad = %q", got)
	}
	// Wide runes count double toward the fill width.
	if got := Pad("坂本", 6); got != "坂本  " {
		t.Errorf("Pad wide = %q", got)
	}
	if got := Pad("too long already", 4); got != "too long already" {
		t.Errorf("Pad over-width = %q, want unchanged", got)
	}
}

func TestTruncateAndPadExactWidth(t *testing.T) {
	for _, in := range []string{"Freddie Freeloader", "x", ""} {
		got := TruncateAndPad(in, 10)
		if w := lipgloss.Width(got); w != 10 {
			t.Errorf("TruncateAndPad(%q, 10) width = %d", in, w)
		}
	}
}

func TestRow(t *testing.T) {
	if got := Row("01", "3:58", 10); got != "01    3:58" {
		t.Errorf("Row = %q", got)
	}
	// A row that cannot fit still keeps a one-space gap.
	if got := Row("very long left", "right", 10); got != "very long left right" {
		t.Errorf("Row tight = %q", got)
	}
}

func TestSeparatorAndEmptyLine(t *testing.T) {
	if got := Separator(4); got != "────" {
		t.Errorf("Separator(4) = %q", got)
	}
	if got := EmptyLine(3); got != "   " {
		t.Errorf("EmptyLine(3) = %q", got)
	}
}
