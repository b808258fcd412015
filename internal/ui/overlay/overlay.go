package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Compose draws overlay on top of base. On each line the span between the
// first and last visible overlay cell replaces the base; blank overlay lines
// leave the base untouched. Both inputs may carry ANSI styling.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := ansi.StringWidth(plain) - ansi.StringWidth(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))
		content := ansi.Cut(overlayLine, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		line := ansi.Cut(baseLine, 0, startCol) + content
		if endCol < width {
			line += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[i] = line
	}

	return strings.Join(baseLines, "\n")
}

// Center composes panel over the middle of a width x height base.
func Center(base, panel string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
	return Compose(base, placed, width)
}
