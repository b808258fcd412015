// Package effect defines the playback effects a clip can apply and the
// processing chains they require.
package effect

import (
	"fmt"
	"strings"
)

// Effect is a mutually exclusive playback transformation.
type Effect int

const (
	Normal Effect = iota
	Fast
	Slow
	Bass
	Chopped
)

// Selectable lists the effects offered as buttons, in display order.
var Selectable = []Effect{Bass, Fast, Slow, Chopped}

// String returns the effect name used in config and on buttons.
func (e Effect) String() string {
	switch e {
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	case Slow:
		return "slow"
	case Bass:
		return "bass"
	case Chopped:
		return "chopped"
	default:
		return "unknown"
	}
}

// Parse converts a name to an Effect. "chop" is accepted for Chopped.
func Parse(name string) (Effect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "":
		return Normal, nil
	case "fast":
		return Fast, nil
	case "slow":
		return Slow, nil
	case "bass":
		return Bass, nil
	case "chopped", "chop":
		return Chopped, nil
	}
	return Normal, fmt.Errorf("unknown effect %q", name)
}

// Rate returns the playback rate for the effect.
func (e Effect) Rate() float64 {
	switch e {
	case Fast:
		return 1.5
	case Slow:
		return 0.75
	case Normal, Bass, Chopped:
		return 1.0
	}
	return 1.0
}

// Toggle returns the effect that results from selecting next while e is active:
// selecting the active effect reverts to Normal.
func (e Effect) Toggle(next Effect) Effect {
	if next == e {
		return Normal
	}
	return next
}

// Chain returns the processing chain the effect needs, or nil for rate-only effects.
func (e Effect) Chain(p Params) Chain {
	switch e {
	case Bass:
		return p.Bass.Chain()
	case Chopped:
		return p.Chop.Chain()
	case Normal, Fast, Slow:
		return nil
	}
	return nil
}

// ForRate maps a playback rate back to the effect that produces it.
// Rates with no dedicated effect round to the closest one.
func ForRate(rate float64) Effect {
	switch {
	case rate >= 1.25:
		return Fast
	case rate <= 0.875:
		return Slow
	default:
		return Normal
	}
}
