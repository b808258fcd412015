package board

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/voicenotes/internal/ui/styles"
)

// WaveformBars is the number of bars drawn per clip.
const WaveformBars = 20

var barGlyphs = []rune("▁▂▃▄▅▆▇█")

// Waveform returns n bar heights in [0.15, 1] derived from ref, so a clip
// keeps its shape across runs.
func Waveform(ref string, n int) []float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ref))
	rng := rand.New(rand.NewPCG(h.Sum64(), uint64(n))) //nolint:gosec // decorative

	out := make([]float64, n)
	for i := range out {
		out[i] = 0.15 + 0.85*rng.Float64()
	}
	return out
}

// renderWaveform draws the bars, lit up to progress. chopped dims every
// other bar.
func renderWaveform(levels []float64, progress float64, accent lipgloss.Color, available, chopped bool) string {
	lit := styles.Readable(accent)
	unlit := styles.Fade(lit, 0.6)
	if !available {
		lit, unlit = styles.T().FgSubtle, styles.T().FgSubtle
	}
	played := int(progress*float64(len(levels)) + 0.5)

	var b strings.Builder
	for i, lvl := range levels {
		idx := min(int(lvl*float64(len(barGlyphs))), len(barGlyphs)-1)
		color := unlit
		if i < played {
			color = lit
		}
		if chopped && i%2 == 1 {
			color = styles.Fade(color, 0.5)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(barGlyphs[idx])))
	}
	return b.String()
}
