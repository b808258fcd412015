package playback

import (
	"fmt"
	"time"

	"github.com/llehouerou/voicenotes/internal/effect"
)

// Surface renders controller views. Render is called with the controller
// locked and must not call back into it.
type Surface interface {
	Render(v View)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(View)

func (f SurfaceFunc) Render(v View) { f(v) }

type nopSurface struct{}

func (nopSurface) Render(View) {}

// View is a snapshot of one clip for presentation.
type View struct {
	ID       int
	Title    string
	Artist   string
	State    State
	Effect   effect.Effect
	Position time.Duration
	Duration time.Duration
	// Progress is Position/Duration in [0, 1]; 0 when the duration is unknown.
	Progress float64
	// DurationLabel counts down the remaining time ("m:ss").
	DurationLabel string
	// VisualOnly is set when the engine could not apply the effect's
	// processing chain and the surface shows an approximation instead.
	VisualOnly bool
	Loading    bool
	Err        error
}

// Playing reports whether the clip is playing.
func (v View) Playing() bool { return v.State == StatePlaying }

// Available reports whether the clip can be played.
func (v View) Available() bool { return v.Err == nil && !v.Loading && v.Duration > 0 }

// FormatClock formats d as m:ss, truncating fractional seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func remainingLabel(pos, dur time.Duration) string {
	if dur <= 0 {
		return FormatClock(0)
	}
	return FormatClock(dur - pos)
}
