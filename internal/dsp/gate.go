package dsp

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*Gate)(nil)

// Gate mutes the tail of every period, producing a chopped, stuttering sound.
type Gate struct {
	s      beep.Streamer
	period int // samples
	open   int // audible samples per period
	pos    int
}

// NewGate returns a gate keeping the first duty fraction of every period audible.
func NewGate(s beep.Streamer, sr beep.SampleRate, period time.Duration, duty float64) (*Gate, error) {
	n := sr.N(period)
	if n <= 0 {
		return nil, fmt.Errorf("%w: gate period %v too short", ErrInvalidStage, period)
	}
	if duty <= 0 || duty > 1 {
		return nil, fmt.Errorf("%w: gate duty %v outside (0, 1]", ErrInvalidStage, duty)
	}
	return &Gate{s: s, period: n, open: int(float64(n) * duty)}, nil
}

// Stream passes the open part of each period and silences the rest.
func (g *Gate) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.s.Stream(samples)
	for i := range n {
		if g.pos >= g.open {
			samples[i] = [2]float64{}
		}
		g.pos++
		if g.pos >= g.period {
			g.pos = 0
		}
	}
	return n, ok
}

// Err returns the wrapped streamer's error.
func (g *Gate) Err() error {
	return g.s.Err()
}
