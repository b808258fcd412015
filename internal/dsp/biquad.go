// Package dsp builds beep streamers for effect processing chains.
package dsp

import (
	"errors"
	"fmt"
	"math"

	"github.com/gopxl/beep/v2"
)

// ErrInvalidStage is returned when a stage's parameters cannot be realised
// at the output sample rate.
var ErrInvalidStage = errors.New("invalid processing stage")

var _ beep.Streamer = (*Biquad)(nil)

// coefficients are normalised so that a0 == 1.
type coefficients struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// Biquad is a second-order IIR filter (RBJ audio-EQ cookbook) applied to both channels.
type Biquad struct {
	s  beep.Streamer
	c  coefficients
	x1 [2]float64
	x2 [2]float64
	y1 [2]float64
	y2 [2]float64
}

// NewLowShelf returns a low-shelf filter boosting frequencies below freq by gainDB.
func NewLowShelf(s beep.Streamer, sr beep.SampleRate, freq, gainDB float64) (*Biquad, error) {
	if err := checkFreq(sr, freq); err != nil {
		return nil, err
	}
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / float64(sr)
	cosw := math.Cos(w0)
	// Shelf slope S = 1
	alpha := math.Sin(w0) / 2 * math.Sqrt2
	sqrtA2alpha := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cosw + sqrtA2alpha)
	b1 := 2 * a * ((a - 1) - (a+1)*cosw)
	b2 := a * ((a + 1) - (a-1)*cosw - sqrtA2alpha)
	a0 := (a + 1) + (a-1)*cosw + sqrtA2alpha
	a1 := -2 * ((a - 1) + (a+1)*cosw)
	a2 := (a + 1) + (a-1)*cosw - sqrtA2alpha

	return newBiquad(s, b0, b1, b2, a0, a1, a2), nil
}

// NewPeaking returns a peaking filter boosting a band around freq by gainDB.
func NewPeaking(s beep.Streamer, sr beep.SampleRate, freq, q, gainDB float64) (*Biquad, error) {
	if err := checkFreq(sr, freq); err != nil {
		return nil, err
	}
	if q <= 0 {
		return nil, fmt.Errorf("%w: peaking Q must be positive, got %v", ErrInvalidStage, q)
	}
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / float64(sr)
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := 1 + alpha*a
	b1 := -2 * cosw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cosw
	a2 := 1 - alpha/a

	return newBiquad(s, b0, b1, b2, a0, a1, a2), nil
}

func newBiquad(s beep.Streamer, b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return &Biquad{
		s: s,
		c: coefficients{
			b0: b0 / a0,
			b1: b1 / a0,
			b2: b2 / a0,
			a1: a1 / a0,
			a2: a2 / a0,
		},
	}
}

func checkFreq(sr beep.SampleRate, freq float64) error {
	nyquist := float64(sr) / 2
	if sr <= 0 || freq <= 0 || freq >= nyquist {
		return fmt.Errorf("%w: frequency %v Hz outside (0, %v)", ErrInvalidStage, freq, nyquist)
	}
	return nil
}

// Stream filters samples from the wrapped streamer in place.
func (f *Biquad) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	c := f.c
	for i := range n {
		for ch := range 2 {
			x := samples[i][ch]
			y := c.b0*x + c.b1*f.x1[ch] + c.b2*f.x2[ch] - c.a1*f.y1[ch] - c.a2*f.y2[ch]
			f.x2[ch], f.x1[ch] = f.x1[ch], x
			f.y2[ch], f.y1[ch] = f.y1[ch], y
			samples[i][ch] = y
		}
	}
	return n, ok
}

// Err returns the wrapped streamer's error.
func (f *Biquad) Err() error {
	return f.s.Err()
}
