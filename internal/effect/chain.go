package effect

import "time"

// Stage is one processing step of a Chain. The set of stages is closed:
// LowShelf, Peaking, Gain and Gate.
type Stage interface {
	stage()
}

// Chain is an ordered list of stages applied between the decoded signal and the output.
// A nil Chain means no processing.
type Chain []Stage

// LowShelf boosts (or cuts) frequencies below Freq by GainDB.
type LowShelf struct {
	Freq   float64 // Hz
	GainDB float64
}

// Peaking boosts (or cuts) a band centred on Freq.
type Peaking struct {
	Freq   float64 // Hz
	Q      float64
	GainDB float64
}

// Gain scales the signal by Factor (1.0 = unchanged).
type Gain struct {
	Factor float64
}

// Gate mutes the signal for the part of every Period that follows Duty.
type Gate struct {
	Period time.Duration
	Duty   float64 // fraction of the period that stays audible, 0-1
}

func (LowShelf) stage() {}
func (Peaking) stage()  {}
func (Gain) stage()     {}
func (Gate) stage()     {}

// BassParams tunes the bass chain.
type BassParams struct {
	ShelfFreq   float64 `koanf:"shelf_freq"`
	ShelfGainDB float64 `koanf:"shelf_gain"`
	SubBass     bool    `koanf:"sub_bass"`
	PeakFreq    float64 `koanf:"peak_freq"`
	PeakQ       float64 `koanf:"peak_q"`
	PeakGainDB  float64 `koanf:"peak_gain"`
	Makeup      float64 `koanf:"makeup_gain"`
}

// ChopParams tunes the chopped gate.
type ChopParams struct {
	Period time.Duration `koanf:"period"`
	Duty   float64       `koanf:"duty"`
}

// Params holds the tunables of every chain-based effect.
type Params struct {
	Bass BassParams `koanf:"bass"`
	Chop ChopParams `koanf:"chop"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Bass: BassParams{
			ShelfFreq:   150,
			ShelfGainDB: 15,
			SubBass:     true,
			PeakFreq:    60,
			PeakQ:       1,
			PeakGainDB:  12,
			Makeup:      1.3,
		},
		Chop: ChopParams{
			Period: 250 * time.Millisecond,
			Duty:   0.5,
		},
	}
}

// Chain builds low-shelf -> (peaking) -> gain.
func (p BassParams) Chain() Chain {
	c := Chain{LowShelf{Freq: p.ShelfFreq, GainDB: p.ShelfGainDB}}
	if p.SubBass {
		c = append(c, Peaking{Freq: p.PeakFreq, Q: p.PeakQ, GainDB: p.PeakGainDB})
	}
	return append(c, Gain{Factor: p.Makeup})
}

// Chain builds a single gate stage.
func (p ChopParams) Chain() Chain {
	return Chain{Gate{Period: p.Period, Duty: p.Duty}}
}
