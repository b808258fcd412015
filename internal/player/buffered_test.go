package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/voicenotes/internal/effect"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func loadBuffered(t *testing.T, d time.Duration) (*Buffered, *pullSink, *fakeClock) {
	t.Helper()
	p := writeWAV(t, t.TempDir(), "clip.wav", d, 0.25)
	sink := newPullSink()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	e := NewBuffered(sink, nil)
	e.now = clock.Now
	t.Cleanup(func() { _ = e.Close() })
	got, err := e.Load(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, d, got)
	return e, sink, clock
}

func TestBuffered_PositionFollowsClock(t *testing.T) {
	e, _, clock := loadBuffered(t, 10*time.Second)

	require.NoError(t, e.Play(1, nil))
	clock.Advance(4 * time.Second)

	assert.Equal(t, 4*time.Second, e.Position())
}

func TestBuffered_RateChangeKeepsPositionContinuous(t *testing.T) {
	e, sink, clock := loadBuffered(t, 10*time.Second)

	require.NoError(t, e.Play(1, nil))
	clock.Advance(4 * time.Second)

	require.NoError(t, e.Play(effect.Fast.Rate(), nil))
	assert.Equal(t, 4*time.Second, e.Position())

	clock.Advance(time.Second)
	assert.Equal(t, 5500*time.Millisecond, e.Position())

	sink.pull(10)
	assert.Equal(t, 1, sink.attached(), "rate change restarts a single streamer")
}

func TestBuffered_PositionHoldsAtDuration(t *testing.T) {
	e, _, clock := loadBuffered(t, 2*time.Second)

	require.NoError(t, e.Play(1, nil))
	clock.Advance(2500 * time.Millisecond)

	assert.Equal(t, 2*time.Second, e.Position())
}

func TestBuffered_PauseFreezesPosition(t *testing.T) {
	e, sink, clock := loadBuffered(t, 10*time.Second)

	require.NoError(t, e.Play(1, nil))
	clock.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, e.Pause())

	clock.Advance(5 * time.Second)
	assert.Equal(t, 3*time.Second, e.Position())

	sink.pull(10)
	assert.Equal(t, 0, sink.attached())
}

func TestBuffered_SetPositionRestartsFromOffset(t *testing.T) {
	e, sink, clock := loadBuffered(t, 10*time.Second)

	require.NoError(t, e.Play(1, nil))
	clock.Advance(time.Second)
	require.NoError(t, e.SetPosition(7*time.Second))
	assert.Equal(t, 7*time.Second, e.Position())

	clock.Advance(time.Second)
	assert.Equal(t, 8*time.Second, e.Position())

	sink.pull(10)
	assert.Equal(t, 1, sink.attached())
}

func TestBuffered_SetPositionWhilePaused(t *testing.T) {
	e, sink, _ := loadBuffered(t, 10*time.Second)

	require.NoError(t, e.SetPosition(6*time.Second))

	assert.Equal(t, 6*time.Second, e.Position())
	assert.Equal(t, 0, sink.attached())
}

func TestBuffered_PlaysDecodedSamples(t *testing.T) {
	e, sink, _ := loadBuffered(t, time.Second)

	require.NoError(t, e.Play(1, effect.Chain{effect.Gain{Factor: 2}}))

	assert.InDelta(t, 0.5, level(sink.pull(2000)), 0.01)
}

func TestBuffered_NaturalEndFiresOnEnded(t *testing.T) {
	e, sink, _ := loadBuffered(t, 100*time.Millisecond)
	ended := make(chan struct{})
	e.OnEnded(func() { close(ended) })

	require.NoError(t, e.Play(1, nil))
	sink.pull(testRate.N(time.Second))

	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("OnEnded was not called")
	}
	assert.Equal(t, time.Duration(0), e.Position())
}

func TestBuffered_CloseDropsBuffer(t *testing.T) {
	e, _, _ := loadBuffered(t, time.Second)

	require.NoError(t, e.Close())

	assert.Equal(t, time.Duration(0), e.Duration())
	require.ErrorIs(t, e.Play(1, nil), ErrNotLoaded)
}
