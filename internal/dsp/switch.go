package dsp

import (
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/voicenotes/internal/effect"
)

var _ beep.Streamer = (*Switch)(nil)

// Switch is a pluggable processing stage: it routes its input through the
// engaged chain, or passes it through untouched when disengaged.
// Callers serialise Engage/Disengage with streaming (speaker lock).
type Switch struct {
	input  beep.Streamer
	sr     beep.SampleRate
	active beep.Streamer
	chain  effect.Chain
}

// NewSwitch creates a disengaged switch over input.
func NewSwitch(input beep.Streamer, sr beep.SampleRate) *Switch {
	return &Switch{input: input, sr: sr, active: input}
}

// Engage routes the input through chain. A nil chain disengages.
// On error the previous routing is kept.
func (s *Switch) Engage(chain effect.Chain) error {
	if len(chain) == 0 {
		s.Disengage()
		return nil
	}
	built, err := Build(s.input, s.sr, chain)
	if err != nil {
		return err
	}
	s.active = built
	s.chain = chain
	return nil
}

// Disengage bypasses any chain.
func (s *Switch) Disengage() {
	s.active = s.input
	s.chain = nil
}

// Engaged reports whether a chain is active.
func (s *Switch) Engaged() bool {
	return s.chain != nil
}

// Stream streams from the active route.
func (s *Switch) Stream(samples [][2]float64) (int, bool) {
	return s.active.Stream(samples)
}

// Err returns the active route's error.
func (s *Switch) Err() error {
	return s.active.Err()
}
