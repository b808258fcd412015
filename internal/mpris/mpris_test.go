//go:build linux

package mpris

import (
	"context"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/voicenotes/internal/clip"
	"github.com/llehouerou/voicenotes/internal/effect"
	"github.com/llehouerou/voicenotes/internal/playback"
	"github.com/llehouerou/voicenotes/internal/player"
)

func newTestAdapter(t *testing.T, n int) (*playerAdapter, *playback.Board) {
	t.Helper()
	refs := make([]string, n)
	for i := range refs {
		refs[i] = "/audio/note-" + string(rune('a'+i)) + ".mp3"
	}
	b := playback.NewBoard(clip.NewList(refs), func() player.Engine {
		return player.NewMock(10 * time.Second)
	}, playback.Options{})
	require.NoError(t, b.LoadAll(context.Background()))
	return &playerAdapter{board: b}, b
}

func TestPlayerAdapter_PlayPauseFollowsCurrent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, b := newTestAdapter(t, 2)
		defer b.Close()

		require.NoError(t, p.PlayPause())
		status, _ := p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPlaying, status)
		assert.Same(t, b.Controller(0), b.Playing())

		require.NoError(t, p.PlayPause())
		status, _ = p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPaused, status)
	})
}

func TestPlayerAdapter_NextPrevious(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, b := newTestAdapter(t, 3)
		defer b.Close()

		ok, _ := p.CanGoPrevious()
		assert.False(t, ok)

		require.NoError(t, p.Next())
		assert.Same(t, b.Controller(1), b.Playing())

		require.NoError(t, p.Next())
		ok, _ = p.CanGoNext()
		assert.False(t, ok)
		require.NoError(t, p.Next(), "next past the end is a no-op")
		assert.Same(t, b.Controller(2), b.Playing())

		require.NoError(t, p.Previous())
		assert.Same(t, b.Controller(1), b.Playing())
		assert.Equal(t, playback.StateStopped, b.Controller(2).State())
	})
}

func TestPlayerAdapter_Seek(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, b := newTestAdapter(t, 1)
		defer b.Close()

		require.NoError(t, p.SetPosition("", types.Microseconds(4*time.Second/time.Microsecond)))
		pos, _ := p.Position()
		assert.InDelta(t, 4_000_000, pos, 1)

		require.NoError(t, p.Seek(types.Microseconds(2*time.Second/time.Microsecond)))
		pos, _ = p.Position()
		assert.InDelta(t, 6_000_000, pos, 1)
	})
}

func TestPlayerAdapter_RateMapsToEffects(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, b := newTestAdapter(t, 1)
		defer b.Close()

		require.NoError(t, p.SetRate(1.5))
		assert.Equal(t, effect.Fast, b.Controller(0).Effect())
		rate, _ := p.Rate()
		assert.InDelta(t, 1.5, rate, 1e-9)

		require.NoError(t, p.SetRate(0.5))
		assert.Equal(t, effect.Slow, b.Controller(0).Effect())

		minRate, _ := p.MinimumRate()
		maxRate, _ := p.MaximumRate()
		assert.InDelta(t, 0.75, minRate, 1e-9)
		assert.InDelta(t, 1.5, maxRate, 1e-9)
	})
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, b := newTestAdapter(t, 1)
		defer b.Close()

		meta, err := p.Metadata()

		require.NoError(t, err)
		assert.Equal(t, "Note A", meta.Title)
		assert.Equal(t, types.Microseconds(10_000_000), meta.Length)
		assert.True(t, strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/"))
		assert.Empty(t, meta.Artist)
	})
}

func TestPlayerAdapter_StopStopsAll(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, b := newTestAdapter(t, 2)
		defer b.Close()
		require.NoError(t, b.Controller(1).Play())

		require.NoError(t, p.Stop())

		assert.Nil(t, b.Playing())
	})
}

func TestFormatTrackID_Stable(t *testing.T) {
	a := formatTrackID("/audio/a.mp3")
	assert.Equal(t, a, formatTrackID("/audio/a.mp3"))
	assert.NotEqual(t, a, formatTrackID("/audio/b.mp3"))
}
