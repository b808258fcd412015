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

// Buffered is the buffer-decode backend: Load decodes the whole clip into
// memory. Position is derived from the wall clock since the last start,
// scaled by the rate and held at the clip duration once the clip runs out. Every rate change or
// seek restarts a fresh buffer streamer at the computed offset.
type Buffered struct {
	sink     Sink
	resolver *Resolver
	now      func() time.Time

	mu        sync.Mutex
	buffer    *beep.Buffer
	duration  time.Duration
	tags      Tags
	pipe      *pipeline
	playing   bool
	rate      float64
	chain     effect.Chain
	anchor    time.Duration
	startedAt time.Time
	gen       int
	onEnded   func()
	onError   func(error)
}

// NewBuffered creates a buffer-decode engine playing into sink.
func NewBuffered(sink Sink, resolver *Resolver) *Buffered {
	if resolver == nil {
		resolver = &Resolver{}
	}
	return &Buffered{sink: sink, resolver: resolver, now: time.Now, rate: 1}
}

// Load fetches and fully decodes ref.
func (e *Buffered) Load(ctx context.Context, ref string) (time.Duration, error) {
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
	buf := beep.NewBuffer(format)
	buf.Append(source)
	decodeErr := source.Err()
	source.Close()
	if decodeErr != nil {
		return 0, fmt.Errorf("decode %s: %w", ref, decodeErr)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseLocked()
	e.buffer = buf
	e.duration = format.SampleRate.D(buf.Len())
	e.tags = tags
	e.anchor = 0

	slog.Debug("clip buffered",
		"ref", ref,
		"kind", m.Kind,
		"size", humanize.IBytes(uint64(max(m.Size, 0))), //nolint:gosec // clamped
		"duration", e.duration)
	return e.duration, nil
}

// Play starts playback at the current position, or restarts it under a new
// rate and chain while keeping the position continuous.
func (e *Buffered) Play(rate float64, chain effect.Chain) error {
	if rate <= 0 {
		return errInvalidRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buffer == nil {
		return ErrNotLoaded
	}
	if e.playing {
		e.anchor = e.positionLocked()
		e.detachLocked()
	}
	e.rate = rate
	e.chain = chain
	e.playing = true
	return chainError(e.startLocked())
}

// startLocked plays a fresh buffer streamer from the anchor.
func (e *Buffered) startLocked() error {
	format := e.buffer.Format()
	from := min(max(format.SampleRate.N(e.anchor), 0), e.buffer.Len())
	src := e.buffer.Streamer(from, e.buffer.Len())

	e.gen++
	gen := e.gen
	p := newPipeline(src, format.SampleRate, e.sink.SampleRate(), e.rate,
		func(err error) { go e.finish(gen, err) })
	err := p.engage(e.chain)
	e.pipe = p
	e.startedAt = e.now()
	e.sink.Play(p.ctrl)
	return err
}

func (e *Buffered) detachLocked() {
	if e.pipe == nil {
		return
	}
	e.sink.Lock()
	e.pipe.detach()
	e.sink.Unlock()
	e.pipe = nil
}

func (e *Buffered) Pause() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playing {
		e.anchor = e.positionLocked()
		e.playing = false
		e.detachLocked()
	}
	return e.anchor
}

func (e *Buffered) SetPosition(d time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buffer == nil {
		return ErrNotLoaded
	}
	e.anchor = clampPosition(d, e.duration)
	if e.playing {
		e.detachLocked()
		_ = e.startLocked()
	}
	return nil
}

func (e *Buffered) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

func (e *Buffered) positionLocked() time.Duration {
	if !e.playing {
		return e.anchor
	}
	elapsed := e.now().Sub(e.startedAt)
	return clampPosition(e.anchor+time.Duration(float64(elapsed)*e.rate), e.duration)
}

func (e *Buffered) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Buffered) Tags() Tags {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tags
}

func (e *Buffered) OnEnded(fn func()) {
	e.mu.Lock()
	e.onEnded = fn
	e.mu.Unlock()
}

func (e *Buffered) OnError(fn func(error)) {
	e.mu.Lock()
	e.onError = fn
	e.mu.Unlock()
}

func (e *Buffered) finish(gen int, err error) {
	e.mu.Lock()
	if gen != e.gen || !e.playing {
		e.mu.Unlock()
		return
	}
	e.playing = false
	e.pipe = nil
	e.anchor = 0
	onEnded, onError := e.onEnded, e.onError
	e.mu.Unlock()

	notify(err, onEnded, onError)
}

// Close stops playback and drops the decoded buffer.
func (e *Buffered) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseLocked()
	return nil
}

func (e *Buffered) releaseLocked() {
	e.detachLocked()
	e.gen++
	e.playing = false
	e.buffer = nil
	e.duration = 0
	e.anchor = 0
}
