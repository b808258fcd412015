// internal/player/engine.go
package player

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/voicenotes/internal/effect"
)

var (
	// ErrChainUnsupported is returned by Play when the engine started playback
	// but could not insert the requested processing chain. Playback continues
	// unprocessed; callers treat it as a degraded success.
	ErrChainUnsupported = errors.New("processing chain unsupported")

	// ErrUnsupportedFormat is returned by Load for media the engine cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrClipTooLarge is returned by Load when a fetched clip exceeds the
	// resolver's size limit.
	ErrClipTooLarge = errors.New("clip too large")

	// ErrNotLoaded is returned when an operation needs a loaded clip.
	ErrNotLoaded = errors.New("no clip loaded")

	errInvalidRate = errors.New("playback rate must be positive")
)

// Engine is the audio engine contract a playback controller drives.
//
// An engine owns one clip. Play both starts playback and changes rate or
// chain while playing; Pause returns the position it stopped at. The ended
// and error callbacks are never invoked on the audio thread.
type Engine interface {
	Load(ctx context.Context, ref string) (time.Duration, error)
	Play(rate float64, chain effect.Chain) error
	Pause() time.Duration
	SetPosition(d time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	OnEnded(fn func())
	OnError(fn func(error))
	Close() error
}

// Tagged is implemented by engines that expose the embedded tags of the
// loaded clip.
type Tagged interface {
	Tags() Tags
}

// Tags holds the embedded metadata the board displays.
type Tags struct {
	Title  string
	Artist string
	Format string
}

// Verify implementations at compile time.
var (
	_ Engine = (*Streaming)(nil)
	_ Engine = (*Buffered)(nil)
	_ Engine = (*Mock)(nil)
	_ Tagged = (*Streaming)(nil)
	_ Tagged = (*Buffered)(nil)
)

func clampPosition(d, duration time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if duration > 0 && d > duration {
		return duration
	}
	return d
}
