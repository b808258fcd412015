package player

import (
	"sync"

	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/voicenotes/internal/dsp"
	"github.com/llehouerou/voicenotes/internal/effect"
)

var _ beep.Streamer = (*endWatch)(nil)

// endWatch reports once when the processed signal is drained or fails.
// A short read counts as drained: a beep streamer only returns fewer samples
// than asked on its last call. It runs on the audio thread, so onEnd must not
// block.
type endWatch struct {
	src   beep.Streamer
	once  sync.Once
	onEnd func(err error)
}

func (w *endWatch) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = w.src.Stream(samples)
	if !ok || n < len(samples) {
		w.once.Do(func() { w.onEnd(w.src.Err()) })
	}
	return n, ok
}

func (w *endWatch) Err() error { return w.src.Err() }

// pipeline is one attachment of a clip to a sink:
//
//	source -> resampler -> chain switch -> endWatch -> ctrl -> sink
//
// The resampler carries the playback rate; the chain switch carries the
// processing chain. Changing one never touches the other. The end is watched
// at the chain output because the resampler swallows its source's final ok.
type pipeline struct {
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	chain     *dsp.Switch
	srcRate   beep.SampleRate
	outRate   beep.SampleRate
}

func newPipeline(
	src beep.Streamer,
	srcRate, outRate beep.SampleRate,
	rate float64,
	onEnd func(error),
) *pipeline {
	p := &pipeline{srcRate: srcRate, outRate: outRate}
	p.resampler = beep.ResampleRatio(4, p.ratio(rate), src)
	p.chain = dsp.NewSwitch(p.resampler, outRate)
	p.ctrl = &beep.Ctrl{Streamer: &endWatch{src: p.chain, onEnd: onEnd}}
	return p
}

func (p *pipeline) ratio(rate float64) float64 {
	return rate * float64(p.srcRate) / float64(p.outRate)
}

// The following methods must be called with the sink locked.

func (p *pipeline) setRate(rate float64) {
	p.resampler.SetRatio(p.ratio(rate))
}

// engage inserts chain. On failure the pipeline plays unprocessed.
func (p *pipeline) engage(chain effect.Chain) error {
	if err := p.chain.Engage(chain); err != nil {
		p.chain.Disengage()
		return err
	}
	return nil
}

// detach makes the sink drop this pipeline on its next pull.
func (p *pipeline) detach() {
	p.ctrl.Streamer = nil
}
