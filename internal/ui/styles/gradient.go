package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Ramp returns size colors blended from one color to the other. Blending is
// done in HCL space for perceptually even steps. Used by the visualizer to
// color bar heights.
func Ramp(size int, from, to lipgloss.Color) []lipgloss.Color {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []lipgloss.Color{from}
	}

	c1 := parseHex(from)
	c2 := parseHex(to)

	colors := make([]lipgloss.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
	}
	return colors
}

// ApplyGradient renders text with a horizontal color gradient. The text is
// split into grapheme clusters before coloring.
func ApplyGradient(text string, from, to lipgloss.Color, bold bool) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	colors := Ramp(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(colors[i])
		if bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// parseHex converts a lipgloss hex color. ANSI palette colors fall back to
// a neutral gray.
func parseHex(c lipgloss.Color) colorful.Color {
	if hex := string(c); len(hex) == 7 && hex[0] == '#' {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
