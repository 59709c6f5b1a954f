package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders text in bold with a left-to-right color
// gradient, one color step per grapheme cluster. Blending happens in HCL
// space so the ramp stays perceptually even.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	c1 := parseHex(from)
	c2 := parseHex(to)

	var b strings.Builder
	for i, cluster := range clusters {
		t := 0.0
		if len(clusters) > 1 {
			t = float64(i) / float64(len(clusters)-1)
		}
		step := c1.BlendHcl(c2, t)
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(step.Hex())).
			Render(cluster))
	}
	return b.String()
}

// parseHex reads a "#rrggbb" lipgloss color. Non-hex values (ANSI color
// numbers) fall back to a neutral gray rather than failing.
func parseHex(c lipgloss.Color) colorful.Color {
	if s := string(c); len(s) == 7 && s[0] == '#' {
		if col, err := colorful.Hex(s); err == nil {
			return col
		}
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
