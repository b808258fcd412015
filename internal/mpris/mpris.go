//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/voicenotes/internal/effect"
	"github.com/llehouerou/voicenotes/internal/playback"
)

// Adapter exposes the board's transport slot over MPRIS.
type Adapter struct {
	server *server.Server
}

// New creates and starts an MPRIS adapter for b.
func New(b *playback.Board) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("voicenotes", &rootAdapter{}, &playerAdapter{board: b}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Voice Notes", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/wav", "audio/mp4", "audio/flac"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter against the
// board's current clip: the playing one, else the last played.
type playerAdapter struct {
	board *playback.Board
}

func (p *playerAdapter) current() *playback.Controller {
	return p.board.Current()
}

func (p *playerAdapter) Next() error {
	return p.jump(1)
}

func (p *playerAdapter) Previous() error {
	return p.jump(-1)
}

// jump plays the clip delta places from the current one.
func (p *playerAdapter) jump(delta int) error {
	c := p.current()
	if c == nil {
		return nil
	}
	next := p.board.Controller(c.ID() + delta)
	if next == nil {
		return nil
	}
	return next.Play()
}

func (p *playerAdapter) Pause() error {
	if c := p.current(); c != nil {
		c.Pause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if c := p.current(); c != nil {
		return c.Toggle()
	}
	return nil
}

func (p *playerAdapter) Stop() error {
	p.board.StopAll()
	return nil
}

func (p *playerAdapter) Play() error {
	if c := p.current(); c != nil {
		return c.Play()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	c := p.current()
	if c == nil {
		return nil
	}
	return seekTo(c, c.Position()+time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	c := p.current()
	if c == nil {
		return nil
	}
	return seekTo(c, time.Duration(position)*time.Microsecond)
}

func seekTo(c *playback.Controller, pos time.Duration) error {
	d := c.Duration()
	if d <= 0 {
		return nil
	}
	return c.Seek(float64(pos) / float64(d))
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	c := p.current()
	if c == nil {
		return types.PlaybackStatusStopped, nil
	}
	return playbackStatus(c.State()), nil
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateStopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

// Rate reports the rate of the current clip's effect.
func (p *playerAdapter) Rate() (float64, error) {
	c := p.current()
	if c == nil {
		return 1.0, nil
	}
	return c.Effect().Rate(), nil
}

// SetRate selects the rate effect closest to rate.
func (p *playerAdapter) SetRate(rate float64) error {
	c := p.current()
	if c == nil {
		return nil
	}
	return c.ApplyEffect(effect.ForRate(rate))
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	c := p.current()
	if c == nil {
		return types.Metadata{}, nil
	}
	return metadata(c.Clip().Ref, c.View()), nil
}

func metadata(ref string, v playback.View) types.Metadata {
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(ref)),
		Length:  types.Microseconds(v.Duration.Microseconds()),
		Title:   v.Title,
	}
	if v.Artist != "" {
		meta.Artist = []string{v.Artist}
	}
	return meta
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	c := p.current()
	if c == nil {
		return 0, nil
	}
	return c.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return effect.Slow.Rate(), nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return effect.Fast.Rate(), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	c := p.current()
	return c != nil && c.ID() < p.board.Len()-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	c := p.current()
	return c != nil && c.ID() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	c := p.current()
	return c != nil && c.View().Available(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(ref string) string {
	h := fnv.New64a()
	h.Write([]byte(ref))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
