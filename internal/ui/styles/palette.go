package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// CardPalette is the accent colour cycle of clip cards.
var CardPalette = []lipgloss.Color{
	"#075e54", "#128c7e", "#25d366", "#34b7f1", "#7b68ee",
	"#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4", "#feca57",
}

// CardColor returns the accent of card i.
func CardColor(i int) lipgloss.Color {
	n := len(CardPalette)
	return CardPalette[((i%n)+n)%n]
}

// Readable returns accent, lightened until it reads against the theme
// background. Dark palette entries like #075e54 would vanish otherwise.
func Readable(accent lipgloss.Color) lipgloss.Color {
	c, ok := parseHex(accent)
	if !ok {
		return accent
	}
	bg, _ := parseHex(T().BgBase)
	white := colorful.Color{R: 1, G: 1, B: 1}
	for i := 0; i < 10 && contrast(c, bg) < 3; i++ {
		c = c.BlendLab(white, 0.15).Clamped()
	}
	return lipgloss.Color(c.Hex())
}

// OnColor returns black or white, whichever reads better on bg.
func OnColor(bg lipgloss.Color) lipgloss.Color {
	c, ok := parseHex(bg)
	if !ok {
		return T().FgBase
	}
	if luminance(c) > 0.4 {
		return lipgloss.Color("#111b21")
	}
	return lipgloss.Color("#ffffff")
}

// Fade blends c toward the theme background by t in [0, 1].
func Fade(c lipgloss.Color, t float64) lipgloss.Color {
	from, ok := parseHex(c)
	switch {
	case !ok || t <= 0:
		return c
	case t >= 1:
		return T().BgBase
	}
	bg, _ := parseHex(T().BgBase)
	return lipgloss.Color(from.BlendLab(bg, t).Clamped().Hex())
}

func parseHex(c lipgloss.Color) (colorful.Color, bool) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}

// luminance is the WCAG relative luminance.
func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// contrast is the WCAG contrast ratio of a and b.
func contrast(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
