package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	colors := Blend(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Bold(true).Render(cluster))
	}
	return b.String()
}

// Blend returns size colors from from to to, blended in HCL space.
// Colors that are not #rrggbb blend as neutral gray.
func Blend(size int, from, to lipgloss.Color) []lipgloss.Color {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []lipgloss.Color{from}
	}

	c1 := toColorful(from)
	c2 := toColorful(to)

	colors := make([]lipgloss.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
	}
	colors[0], colors[size-1] = from, to
	return colors
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, ok := parseHex(c); ok {
		return col
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
