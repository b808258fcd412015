package dsp

import (
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/llehouerou/voicenotes/internal/effect"
)

// Build wraps s with every stage of chain, in order.
// An empty chain returns s unchanged.
func Build(s beep.Streamer, sr beep.SampleRate, chain effect.Chain) (beep.Streamer, error) {
	out := s
	for i, st := range chain {
		var err error
		switch st := st.(type) {
		case effect.LowShelf:
			out, err = NewLowShelf(out, sr, st.Freq, st.GainDB)
		case effect.Peaking:
			out, err = NewPeaking(out, sr, st.Freq, st.Q, st.GainDB)
		case effect.Gain:
			if st.Factor < 0 {
				err = fmt.Errorf("%w: negative gain %v", ErrInvalidStage, st.Factor)
				break
			}
			// effects.Gain multiplies by 1+Gain
			out = &effects.Gain{Streamer: out, Gain: st.Factor - 1}
		case effect.Gate:
			out, err = NewGate(out, sr, st.Period, st.Duty)
		default:
			err = fmt.Errorf("%w: unsupported stage %T", ErrInvalidStage, st)
		}
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return out, nil
}

// Validate reports whether chain can be built at sample rate sr.
func Validate(sr beep.SampleRate, chain effect.Chain) error {
	_, err := Build(silence{}, sr, chain)
	return err
}

type silence struct{}

func (silence) Stream(samples [][2]float64) (int, bool) {
	clear(samples)
	return len(samples), true
}

func (silence) Err() error { return nil }
