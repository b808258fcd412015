package board

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/voicenotes/internal/effect"
	"github.com/llehouerou/voicenotes/internal/playback"
	"github.com/llehouerou/voicenotes/internal/ui/render"
	"github.com/llehouerou/voicenotes/internal/ui/styles"
)

const (
	playGlyph  = "▶"
	pauseGlyph = "⏸"
	errGlyph   = "✕"
	waitGlyph  = "…"
)

// card is the static part of one clip card.
type card struct {
	accent lipgloss.Color
	wave   []float64
	bar    progress.Model
}

func newCard(i int, ref string) card {
	accent := styles.CardColor(i)
	bar := progress.New(
		progress.WithSolidFill(string(styles.Readable(accent))),
		progress.WithoutPercentage(),
		progress.WithWidth(cardInnerW),
	)
	bar.EmptyColor = string(styles.T().FgSubtle)
	return card{
		accent: accent,
		wave:   Waveform(ref, WaveformBars),
		bar:    bar,
	}
}

func (c card) render(v playback.View, focused bool) string {
	t := styles.T()
	s := t.S()

	box := styles.CardStyle(c.accent, focused)
	if v.Err != nil {
		box = styles.DimCardStyle(focused)
	}
	box = box.Width(cardInnerW + 2).Height(CardHeight - 2)

	lines := make([]string, rowStatus+1)
	lines[rowTitle] = c.titleLine(v)

	artist := v.Artist
	if artist == "" {
		artist = "Voice note"
	}
	lines[rowArtist] = s.Muted.Render(render.Truncate(artist, cardInnerW))

	wave := renderWaveform(c.wave, v.Progress, c.accent, v.Available(), v.Effect == effect.Chopped)
	lines[rowWaveform] = render.Row(wave, s.Base.Render(v.DurationLabel), cardInnerW)

	lines[rowProgress] = c.bar.ViewAs(v.Progress)
	lines[rowButtons] = c.buttons(v)
	lines[rowStatus] = statusLine(v)

	return box.Render(strings.Join(lines, "\n"))
}

func (c card) titleLine(v playback.View) string {
	s := styles.T().S()
	glyph := playGlyph
	switch {
	case v.Err != nil:
		glyph = s.Error.Render(errGlyph)
	case v.Loading:
		glyph = s.Muted.Render(waitGlyph)
	case v.Playing():
		glyph = s.Playing.Render(pauseGlyph)
	default:
		glyph = lipgloss.NewStyle().Foreground(styles.Readable(c.accent)).Render(glyph)
	}

	title := render.Truncate(v.Title, cardInnerW-2)
	if v.Err != nil {
		return glyph + " " + s.Subtle.Render(title)
	}
	return glyph + " " + s.Title.Render(title)
}

func (c card) buttons(v playback.View) string {
	s := styles.T().S()
	labels := make([]string, 0, len(effect.Selectable))
	for _, e := range effect.Selectable {
		label := render.Center(buttonLabel(e), buttonWidth)
		switch {
		case !v.Available():
			labels = append(labels, s.Subtle.Render(label))
		case v.Effect == e:
			labels = append(labels, lipgloss.NewStyle().
				Background(c.accent).
				Foreground(styles.OnColor(c.accent)).
				Bold(true).
				Render(label))
		default:
			labels = append(labels, s.Muted.Render(label))
		}
	}
	return strings.Join(labels, strings.Repeat(" ", buttonGap))
}

func buttonLabel(e effect.Effect) string {
	switch e {
	case effect.Bass:
		return "Bass"
	case effect.Fast:
		return "Fast"
	case effect.Slow:
		return "Slow"
	case effect.Chopped:
		return "Chop"
	case effect.Normal:
		return "Normal"
	}
	return e.String()
}

func statusLine(v playback.View) string {
	s := styles.T().S()
	var text string
	style := s.Muted
	switch {
	case v.Err != nil:
		text, style = v.Err.Error(), s.Error
	case v.Loading:
		text = "loading"
	case v.VisualOnly:
		text, style = buttonLabel(v.Effect)+": preview only", s.Warning
	case v.State == playback.StatePlaying:
		text, style = "playing", s.Success
	case v.State == playback.StatePaused:
		text = "paused"
	}
	if text != "" && v.Effect != effect.Normal && !v.VisualOnly && v.Err == nil {
		text += " · " + buttonLabel(v.Effect)
	}
	return style.Render(render.Truncate(text, cardInnerW))
}
