// internal/player/mock.go
package player

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/voicenotes/internal/effect"
)

// PlayCall records one Mock.Play invocation.
type PlayCall struct {
	Rate     float64
	Chain    effect.Chain
	Position time.Duration
}

// Mock is a deterministic Engine for tests. Its position advances with the
// clock at the current rate and stops at the duration; reaching the end does
// not fire OnEnded until SimulateEnded is called.
type Mock struct {
	mu        sync.Mutex
	now       func() time.Time
	duration  time.Duration
	loaded    bool
	loadErr   error
	playErr   error
	seekErr   error
	rejectFX  bool
	playing   bool
	rate      float64
	chain     effect.Chain
	anchor    time.Duration
	startedAt time.Time
	playCalls []PlayCall
	seekCalls []time.Duration
	closed    bool
	onEnded   func()
	onError   func(error)
}

// NewMock creates a mock engine whose clips last duration.
func NewMock(duration time.Duration) *Mock {
	return &Mock{duration: duration, now: time.Now, rate: 1}
}

func (m *Mock) Load(_ context.Context, _ string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	m.loaded = true
	return m.duration, nil
}

func (m *Mock) Play(rate float64, chain effect.Chain) error {
	if rate <= 0 {
		return errInvalidRate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return ErrNotLoaded
	}
	if m.playErr != nil {
		return m.playErr
	}
	if m.playing {
		m.anchor = m.positionLocked()
	}
	m.startedAt = m.now()
	m.rate = rate
	m.chain = chain
	m.playing = true
	m.playCalls = append(m.playCalls, PlayCall{Rate: rate, Chain: chain, Position: m.anchor})
	if m.rejectFX && len(chain) > 0 {
		m.chain = nil
		return ErrChainUnsupported
	}
	return nil
}

func (m *Mock) Pause() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchor = m.positionLocked()
	m.playing = false
	return m.anchor
}

func (m *Mock) SetPosition(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return ErrNotLoaded
	}
	if m.seekErr != nil {
		return m.seekErr
	}
	m.anchor = clampPosition(d, m.duration)
	m.startedAt = m.now()
	m.seekCalls = append(m.seekCalls, m.anchor)
	return nil
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positionLocked()
}

func (m *Mock) positionLocked() time.Duration {
	if !m.playing {
		return m.anchor
	}
	elapsed := m.now().Sub(m.startedAt)
	return clampPosition(m.anchor+time.Duration(float64(elapsed)*m.rate), m.duration)
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return 0
	}
	return m.duration
}

func (m *Mock) OnEnded(fn func()) {
	m.mu.Lock()
	m.onEnded = fn
	m.mu.Unlock()
}

func (m *Mock) OnError(fn func(error)) {
	m.mu.Lock()
	m.onError = fn
	m.mu.Unlock()
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.playing = false
	return nil
}

// Test helpers

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	m.loadErr = err
	m.mu.Unlock()
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	m.seekErr = err
	m.mu.Unlock()
}

// RejectChains makes Play report ErrChainUnsupported for non-empty chains.
func (m *Mock) RejectChains(reject bool) {
	m.mu.Lock()
	m.rejectFX = reject
	m.mu.Unlock()
}

// SetClock replaces the time source.
func (m *Mock) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Mock) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

func (m *Mock) Chain() effect.Chain {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chain
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) PlayCalls() []PlayCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayCall(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// SimulateEnded ends playback as if the clip drained and fires OnEnded.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	m.playing = false
	m.anchor = m.duration
	fn := m.onEnded
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SimulateError fails playback and fires OnError.
func (m *Mock) SimulateError(err error) {
	m.mu.Lock()
	m.playing = false
	fn := m.onError
	m.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
