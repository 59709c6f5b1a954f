// Package render holds width-aware text helpers for laying out panel
// content. Widths are terminal cells, not bytes, so CJK and emoji take
// two columns.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize strips control characters (tab excepted) and invalid UTF-8
// from tag metadata before it reaches the terminal, and normalizes
// non-breaking spaces to plain ones.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			i++
		case r != '\t' && unicode.IsControl(r):
			i += size
		case r == '\u00a0':
			b.WriteByte(' ')
			i += size
		default:
			b.WriteString(s[i : i+size])
			i += size
		}
	}
	return b.String()
}

// clean reports whether s can skip the sanitize pass. The byte scan covers
// C0 controls, the C1 range, and the 0xc2 lead byte of U+00A0.
func clean(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return false
		}
		if b >= 0x80 && b <= 0x9f {
			return false
		}
		if b == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return false
		}
	}
	return true
}

// Truncate fits s into maxWidth cells, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateEllipsis fits s into maxWidth cells using the one-cell ellipsis
// rune, for places where "..." looks heavy.
func TruncateEllipsis(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	for lipgloss.Width(s) > maxWidth-1 && s != "" {
		s = s[:len(s)-1]
	}
	return s + "…"
}

// Pad right-fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row lays out left- and right-aligned content on one line of the given
// width, always keeping at least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator draws a horizontal line of the given width.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// EmptyLine returns width cells of spaces.
func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}
