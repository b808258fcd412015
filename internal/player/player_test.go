package player

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/voicenotes/internal/effect"
)

const testRate = beep.SampleRate(8000)

// constStreamer produces a fixed number of samples of one value.
type constStreamer struct {
	samples   int
	sampleVal float64
	produced  int
}

func (c *constStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := c.samples - c.produced
	if remaining <= 0 {
		return 0, false
	}
	n = min(len(samples), remaining)
	for i := range n {
		samples[i] = [2]float64{c.sampleVal, c.sampleVal}
	}
	c.produced += n
	return n, true
}

func (c *constStreamer) Err() error { return nil }

// writeWAV writes a constant-valued stereo 16-bit wav file.
func writeWAV(t *testing.T, dir, name string, d time.Duration, val float64) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, &constStreamer{samples: testRate.N(d), sampleVal: val}, format))
	return p
}

// pullSink is a Sink driven by the test instead of an audio device.
type pullSink struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	streamers []beep.Streamer
}

func newPullSink() *pullSink { return &pullSink{rate: testRate} }

func (s *pullSink) SampleRate() beep.SampleRate { return s.rate }

func (s *pullSink) Play(st beep.Streamer) {
	s.mu.Lock()
	s.streamers = append(s.streamers, st)
	s.mu.Unlock()
}

func (s *pullSink) Lock()   { s.mu.Lock() }
func (s *pullSink) Unlock() { s.mu.Unlock() }

// pull mixes n samples from every attached streamer, dropping drained ones.
func (s *pullSink) pull(n int) [][2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][2]float64, n)
	tmp := make([][2]float64, n)
	kept := s.streamers[:0]
	for _, st := range s.streamers {
		clear(tmp)
		got, ok := st.Stream(tmp)
		for i := range got {
			out[i][0] += tmp[i][0]
			out[i][1] += tmp[i][1]
		}
		if ok {
			kept = append(kept, st)
		}
	}
	s.streamers = kept
	return out
}

func (s *pullSink) attached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.streamers)
}

// level averages the left channel past the resampler warm-up.
func level(samples [][2]float64) float64 {
	samples = samples[len(samples)/4:]
	var sum float64
	for _, s := range samples {
		sum += s[0]
	}
	return sum / float64(len(samples))
}

func loadStreaming(t *testing.T, d time.Duration) (*Streaming, *pullSink) {
	t.Helper()
	p := writeWAV(t, t.TempDir(), "clip.wav", d, 0.25)
	sink := newPullSink()
	e := NewStreaming(sink, nil)
	t.Cleanup(func() { _ = e.Close() })
	got, err := e.Load(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, d, got)
	return e, sink
}

func TestStreaming_LoadReportsDurationAndFormat(t *testing.T) {
	e, _ := loadStreaming(t, 2*time.Second)

	assert.Equal(t, 2*time.Second, e.Duration())
	assert.Equal(t, "WAV", e.Tags().Format)
	assert.Equal(t, time.Duration(0), e.Position())
}

func TestStreaming_PlayAdvancesWithPulledSamples(t *testing.T) {
	e, sink := loadStreaming(t, 2*time.Second)

	require.NoError(t, e.Play(1, nil))
	out := sink.pull(testRate.N(time.Second))

	assert.InDelta(t, 0.25, level(out), 0.01)
	assert.InDelta(t, float64(time.Second), float64(e.Position()), float64(200*time.Millisecond))
}

func TestStreaming_RateScalesConsumption(t *testing.T) {
	e, sink := loadStreaming(t, 4*time.Second)

	require.NoError(t, e.Play(2, nil))
	sink.pull(testRate.N(time.Second))

	assert.InDelta(t, float64(2*time.Second), float64(e.Position()), float64(300*time.Millisecond))
}

func TestStreaming_PauseHoldsPositionAndSilences(t *testing.T) {
	e, sink := loadStreaming(t, 2*time.Second)

	require.NoError(t, e.Play(1, nil))
	sink.pull(4000)
	pos := e.Pause()

	out := sink.pull(4000)
	assert.InDelta(t, 0, level(out), 1e-9)
	assert.Equal(t, pos, e.Position())

	require.NoError(t, e.Play(1, nil))
	out = sink.pull(4000)
	assert.InDelta(t, 0.25, level(out), 0.01)
	assert.Greater(t, e.Position(), pos)
}

func TestStreaming_SetPositionReplacesPipeline(t *testing.T) {
	e, sink := loadStreaming(t, 2*time.Second)

	require.NoError(t, e.Play(1, nil))
	sink.pull(1000)
	require.NoError(t, e.SetPosition(1500*time.Millisecond))

	assert.Equal(t, 1500*time.Millisecond, e.Position())
	sink.pull(10)
	assert.Equal(t, 1, sink.attached(), "old pipeline should have been dropped")
}

func TestStreaming_SetPositionClamps(t *testing.T) {
	e, _ := loadStreaming(t, time.Second)

	require.NoError(t, e.SetPosition(-time.Second))
	assert.Equal(t, time.Duration(0), e.Position())
	require.NoError(t, e.SetPosition(5*time.Second))
	assert.Equal(t, time.Second, e.Position())
}

func TestStreaming_ChainChangesWithoutRestart(t *testing.T) {
	e, sink := loadStreaming(t, 2*time.Second)

	require.NoError(t, e.Play(1, effect.Chain{effect.Gain{Factor: 2}}))
	assert.InDelta(t, 0.5, level(sink.pull(2000)), 0.01)

	before := e.Position()
	require.NoError(t, e.Play(1, nil))
	assert.Equal(t, before, e.Position(), "changing the chain must not move the decoder")
	assert.InDelta(t, 0.25, level(sink.pull(2000)), 0.01)
}

func TestStreaming_UnsupportedChainStillPlays(t *testing.T) {
	e, sink := loadStreaming(t, 2*time.Second)

	err := e.Play(1, effect.Chain{effect.LowShelf{Freq: 0, GainDB: 6}})
	require.ErrorIs(t, err, ErrChainUnsupported)
	assert.InDelta(t, 0.25, level(sink.pull(2000)), 0.01)
}

func TestStreaming_NaturalEndFiresOnEnded(t *testing.T) {
	e, sink := loadStreaming(t, 100*time.Millisecond)
	ended := make(chan struct{})
	e.OnEnded(func() { close(ended) })

	require.NoError(t, e.Play(1, nil))
	sink.pull(testRate.N(time.Second))

	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("OnEnded was not called")
	}
	sink.pull(10)
	assert.Equal(t, 0, sink.attached())
}

func TestStreaming_NotLoaded(t *testing.T) {
	e := NewStreaming(newPullSink(), nil)

	require.ErrorIs(t, e.Play(1, nil), ErrNotLoaded)
	require.ErrorIs(t, e.SetPosition(0), ErrNotLoaded)
	assert.Equal(t, time.Duration(0), e.Position())
}

func TestStreaming_InvalidRate(t *testing.T) {
	e, _ := loadStreaming(t, time.Second)

	require.Error(t, e.Play(0, nil))
}

func TestStreaming_UnsupportedFormat(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("not audio"), 0o600))

	_, err := NewStreaming(newPullSink(), nil).Load(context.Background(), p)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPipeline_EndReportedOnceAtChainOutput(t *testing.T) {
	var calls int
	p := newPipeline(&constStreamer{samples: 800, sampleVal: 0.25}, testRate, testRate, 1,
		func(error) { calls++ })
	require.NoError(t, p.engage(effect.Chain{effect.Gain{Factor: 2}}))

	buf := make([][2]float64, 500)
	_, ok := p.ctrl.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 0, calls, "a full read is not the end")

	// the resampler turns the drained source into a short read
	for range 3 {
		p.ctrl.Stream(buf)
	}
	assert.Equal(t, 1, calls)
}

func TestPipeline_FastRateStillEnds(t *testing.T) {
	ended := make(chan struct{})
	p := newPipeline(&constStreamer{samples: 800, sampleVal: 0.25}, testRate, testRate, 1.5,
		func(error) { close(ended) })

	buf := make([][2]float64, 200)
	for range 10 {
		p.ctrl.Stream(buf)
	}

	select {
	case <-ended:
	default:
		t.Fatal("end not reported at rate 1.5")
	}
}
