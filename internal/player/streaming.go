package player

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/voicenotes/internal/effect"
)

// Streaming is the immediate-start backend: it decodes progressively while
// playing and reads the position from the decoder.
type Streaming struct {
	sink     Sink
	resolver *Resolver

	mu       sync.Mutex
	source   beep.StreamSeekCloser
	format   beep.Format
	duration time.Duration
	tags     Tags
	pipe     *pipeline
	playing  bool
	rate     float64
	chain    effect.Chain
	gen      int
	onEnded  func()
	onError  func(error)
}

// NewStreaming creates a streaming engine playing into sink.
func NewStreaming(sink Sink, resolver *Resolver) *Streaming {
	if resolver == nil {
		resolver = &Resolver{}
	}
	return &Streaming{sink: sink, resolver: resolver, rate: 1}
}

// Load opens and decodes ref, replacing any clip already loaded.
func (e *Streaming) Load(ctx context.Context, ref string) (time.Duration, error) {
	m, err := e.resolver.Open(ctx, ref)
	if err != nil {
		return 0, err
	}
	tags := readTags(m)
	source, format, err := decode(m)
	if err != nil {
		m.Close()
		return 0, fmt.Errorf("decode %s: %w", ref, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
	e.source = source
	e.format = format
	e.duration = format.SampleRate.D(source.Len())
	e.tags = tags

	slog.Debug("clip loaded",
		"ref", ref,
		"kind", m.Kind,
		"size", humanize.IBytes(uint64(max(m.Size, 0))), //nolint:gosec // clamped
		"duration", e.duration,
		"sample_rate", format.SampleRate)
	return e.duration, nil
}

// Play starts playback at the current position, or applies rate and chain
// to the running playback. When the chain cannot be built playback still
// runs unprocessed and the returned error wraps ErrChainUnsupported.
func (e *Streaming) Play(rate float64, chain effect.Chain) error {
	if rate <= 0 {
		return errInvalidRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return ErrNotLoaded
	}
	e.rate = rate
	e.chain = chain

	if e.pipe != nil {
		e.sink.Lock()
		e.pipe.setRate(rate)
		err := e.pipe.engage(chain)
		e.pipe.ctrl.Paused = false
		e.sink.Unlock()
		e.playing = true
		return chainError(err)
	}

	err := e.attachLocked()
	e.playing = true
	return chainError(err)
}

// attachLocked builds a fresh pipeline from the decoder's current position
// and hands it to the sink.
func (e *Streaming) attachLocked() error {
	e.gen++
	gen := e.gen
	p := newPipeline(e.source, e.format.SampleRate, e.sink.SampleRate(), e.rate,
		func(err error) { go e.finish(gen, err) })
	err := p.engage(e.chain)
	e.pipe = p
	e.sink.Play(p.ctrl)
	return err
}

func (e *Streaming) detachLocked() {
	if e.pipe == nil {
		return
	}
	e.sink.Lock()
	e.pipe.detach()
	e.sink.Unlock()
	e.pipe = nil
}

// Pause halts playback and returns the position it stopped at.
func (e *Streaming) Pause() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pipe != nil && e.playing {
		e.sink.Lock()
		e.pipe.ctrl.Paused = true
		e.sink.Unlock()
	}
	e.playing = false
	return e.positionLocked()
}

// SetPosition moves the decoder to d. A playing clip continues from there.
func (e *Streaming) SetPosition(d time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return ErrNotLoaded
	}
	e.detachLocked()

	e.sink.Lock()
	err := e.source.Seek(e.format.SampleRate.N(clampPosition(d, e.duration)))
	e.sink.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if e.playing {
		_ = e.attachLocked() // chain already validated by Play
	}
	return nil
}

func (e *Streaming) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

func (e *Streaming) positionLocked() time.Duration {
	if e.source == nil {
		return 0
	}
	e.sink.Lock()
	p := e.source.Position()
	e.sink.Unlock()
	return clampPosition(e.format.SampleRate.D(p), e.duration)
}

func (e *Streaming) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Streaming) Tags() Tags {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tags
}

func (e *Streaming) OnEnded(fn func()) {
	e.mu.Lock()
	e.onEnded = fn
	e.mu.Unlock()
}

func (e *Streaming) OnError(fn func(error)) {
	e.mu.Lock()
	e.onError = fn
	e.mu.Unlock()
}

// finish runs off the audio thread once a pipeline's source drains.
func (e *Streaming) finish(gen int, err error) {
	e.mu.Lock()
	if gen != e.gen || !e.playing {
		e.mu.Unlock()
		return
	}
	e.playing = false
	e.pipe = nil
	onEnded, onError := e.onEnded, e.onError
	e.mu.Unlock()

	notify(err, onEnded, onError)
}

// Close stops playback and releases the decoder.
func (e *Streaming) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked()
}

func (e *Streaming) closeLocked() error {
	e.detachLocked()
	e.gen++
	e.playing = false
	if e.source == nil {
		return nil
	}
	err := e.source.Close()
	e.source = nil
	e.duration = 0
	return err
}

func chainError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrChainUnsupported, err)
}

func notify(err error, onEnded func(), onError func(error)) {
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onEnded != nil {
		onEnded()
	}
}
