// internal/playback/controller.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/voicenotes/internal/clip"
	"github.com/llehouerou/voicenotes/internal/effect"
	"github.com/llehouerou/voicenotes/internal/player"
)

// DefaultProgressInterval is the progress publishing cadence (about 10 Hz).
const DefaultProgressInterval = 100 * time.Millisecond

var (
	// ErrNotLoaded is returned by Play before Load has reported a duration.
	ErrNotLoaded = errors.New("clip not loaded")

	// ErrClipUnavailable marks a clip whose resource failed to load or play.
	ErrClipUnavailable = errors.New("clip unavailable")

	errClosed = errors.New("controller closed")
)

// Options configure a Controller.
type Options struct {
	Params   effect.Params
	Interval time.Duration
	Surface  Surface
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultProgressInterval
	}
	if o.Surface == nil {
		o.Surface = nopSurface{}
	}
	return o
}

// Controller drives playback of one clip: its state machine, effect,
// position and progress publishing. All methods are safe for concurrent use.
type Controller struct {
	id        int
	clip      clip.Clip
	engine    player.Engine
	transport *Transport
	params    effect.Params
	interval  time.Duration
	surface   Surface

	mu         sync.Mutex
	state      State
	effect     effect.Effect
	position   time.Duration
	duration   time.Duration
	loaded     bool
	loading    bool
	err        error
	seekTo     float64
	seekQueued bool
	visualOnly bool
	artist     string
	stopTick   context.CancelFunc
	closed     bool
}

// NewController creates a stopped controller for c. Call Load before Play.
func NewController(id int, c clip.Clip, engine player.Engine, t *Transport, opts Options) *Controller {
	opts = opts.withDefaults()
	ctrl := &Controller{
		id:        id,
		clip:      c,
		engine:    engine,
		transport: t,
		params:    opts.Params,
		interval:  opts.Interval,
		surface:   opts.Surface,
	}
	engine.OnEnded(ctrl.handleEnded)
	engine.OnError(ctrl.handleError)
	return ctrl
}

// ID returns the controller's index on its board.
func (c *Controller) ID() int { return c.id }

// Clip returns the clip this controller plays.
func (c *Controller) Clip() clip.Clip { return c.clip }

// Load loads the clip into the engine. On success the duration becomes known
// and a seek requested earlier is applied. On failure the clip is marked
// unavailable; other clips are unaffected.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed
	}
	c.loading = true
	c.renderLocked()
	c.mu.Unlock()

	d, err := c.engine.Load(ctx, c.clip.Ref)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.failLocked(err)
		return c.err
	}
	c.loaded = true
	c.duration = d
	if t, ok := c.engine.(player.Tagged); ok {
		c.artist = t.Tags().Artist
	}
	if c.seekQueued {
		c.seekQueued = false
		c.position = fraction(c.seekTo, d)
		if err := c.engine.SetPosition(c.position); err != nil {
			slog.Warn("apply pending seek", "clip", c.clip.Title, "error", err)
		}
	}
	slog.Debug("clip ready", "clip", c.clip.Title, "duration", d)
	c.renderLocked()
	return nil
}

// Play starts playback, preempting whichever clip holds the transport slot.
// Play while playing is a no-op. A clip parked at its end restarts from 0.
func (c *Controller) Play() error {
	for {
		if err := c.checkPlayable(); err != nil {
			return err
		}
		if h := c.transport.Holder(); h != nil && h != c {
			h.Stop()
		}
		if !c.transport.TryAcquire(c) {
			continue
		}
		c.mu.Lock()
		if c.transport.Holder() == c {
			break
		}
		// preempted between acquire and lock
		c.mu.Unlock()
	}
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		return nil
	}
	if err := c.playableLocked(); err != nil {
		c.transport.Release(c)
		return err
	}

	if c.position >= c.duration {
		c.position = 0
	}
	if c.engine.Position() != c.position {
		if err := c.engine.SetPosition(c.position); err != nil {
			c.transport.Release(c)
			return fmt.Errorf("play %s: %w", c.clip.Title, err)
		}
	}
	if err := c.startEngineLocked(); err != nil {
		c.transport.Release(c)
		c.failLocked(err)
		return c.err
	}
	c.setStateLocked(StatePlaying)
	c.startTickerLocked()
	c.renderLocked()
	return nil
}

func (c *Controller) checkPlayable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playableLocked()
}

func (c *Controller) playableLocked() error {
	switch {
	case c.closed:
		return errClosed
	case c.err != nil:
		return c.err
	case !c.loaded:
		return ErrNotLoaded
	}
	return nil
}

// startEngineLocked applies the current effect to the engine and starts it.
// A chain the engine cannot process degrades to visual-only playback.
func (c *Controller) startEngineLocked() error {
	err := c.engine.Play(c.effect.Rate(), c.effect.Chain(c.params))
	c.visualOnly = false
	if errors.Is(err, player.ErrChainUnsupported) {
		slog.Warn("effect chain unsupported, playing unprocessed",
			"clip", c.clip.Title, "effect", c.effect, "error", err)
		c.visualOnly = true
		return nil
	}
	return err
}

// Pause pauses playback and releases the transport slot.
// It is a no-op unless the clip is playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying {
		return
	}
	c.stopTickerLocked()
	c.position = c.engine.Pause()
	c.transport.Release(c)
	c.setStateLocked(StatePaused)
	c.renderLocked()
}

// Stop stops playback from any state, rewinds to 0 and releases the slot.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	c.stopTickerLocked()
	if c.state == StatePlaying {
		c.engine.Pause()
	}
	if c.loaded {
		if err := c.engine.SetPosition(0); err != nil {
			slog.Warn("rewind", "clip", c.clip.Title, "error", err)
		}
	}
	c.position = 0
	c.transport.Release(c)
	c.setStateLocked(StateStopped)
	c.renderLocked()
}

// Toggle pauses a playing clip and plays any other.
func (c *Controller) Toggle() error {
	if c.State() == StatePlaying {
		c.Pause()
		return nil
	}
	return c.Play()
}

// Seek moves to fraction p of the clip, clamped to [0, 1]. A playing clip
// continues from the new position with the same effect. Before the duration
// is known the request is kept and applied by Load.
func (c *Controller) Seek(p float64) error {
	p = min(max(p, 0), 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClosed
	}
	if !c.loaded || c.duration <= 0 {
		c.seekTo = p
		c.seekQueued = true
		return nil
	}
	target := fraction(p, c.duration)
	if err := c.engine.SetPosition(target); err != nil {
		return fmt.Errorf("seek %s: %w", c.clip.Title, err)
	}
	c.position = target
	c.renderLocked()
	return nil
}

// SetEffect selects e, or returns to normal if e is already active.
func (c *Controller) SetEffect(e effect.Effect) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyEffectLocked(c.effect.Toggle(e))
}

// ApplyEffect makes e the active effect without toggle semantics.
func (c *Controller) ApplyEffect(e effect.Effect) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyEffectLocked(e)
}

// applyEffectLocked switches effect. While playing the engine keeps its
// position and continues under the new rate and chain; the clip never
// passes through Stopped.
func (c *Controller) applyEffectLocked(e effect.Effect) error {
	if c.closed {
		return errClosed
	}
	prev := c.effect
	if prev == e {
		return nil
	}
	c.effect = e
	if c.state == StatePlaying {
		c.position = c.engine.Position()
		if err := c.startEngineLocked(); err != nil {
			c.stopTickerLocked()
			c.transport.Release(c)
			c.failLocked(err)
			return c.err
		}
	} else {
		c.visualOnly = false
	}
	slog.Debug("effect changed", "clip", c.clip.Title, "from", prev, "to", e)
	c.renderLocked()
	return nil
}

// Close stops playback and releases the engine.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.stopLocked()
	c.closed = true
	return c.engine.Close()
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Effect returns the active effect.
func (c *Controller) Effect() effect.Effect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effect
}

// Position returns the current position.
func (c *Controller) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *Controller) positionLocked() time.Duration {
	if c.state == StatePlaying {
		return min(c.engine.Position(), c.duration)
	}
	return c.position
}

// Duration returns the clip duration, 0 while unknown.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Err returns the error that made the clip unavailable, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// View returns a presentation snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	pos := c.positionLocked()
	v := View{
		ID:            c.id,
		Title:         c.clip.Title,
		Artist:        c.artist,
		State:         c.state,
		Effect:        c.effect,
		Position:      pos,
		Duration:      c.duration,
		DurationLabel: remainingLabel(pos, c.duration),
		VisualOnly:    c.visualOnly,
		Loading:       c.loading,
		Err:           c.err,
	}
	if c.duration > 0 {
		v.Progress = min(max(float64(pos)/float64(c.duration), 0), 1)
	}
	return v
}

func (c *Controller) renderLocked() {
	c.surface.Render(c.viewLocked())
}

func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	slog.Debug("state change", "clip", c.clip.Title, "from", c.state, "to", s)
	c.state = s
}

// failLocked marks the clip unavailable and leaves it stopped.
func (c *Controller) failLocked(err error) {
	slog.Error("clip unavailable", "clip", c.clip.Title, "ref", c.clip.Ref, "error", err)
	c.err = fmt.Errorf("%w: %s: %w", ErrClipUnavailable, c.clip.Title, err)
	c.stopTickerLocked()
	c.position = 0
	c.setStateLocked(StateStopped)
	c.renderLocked()
}

// startTickerLocked publishes progress every interval until the clip leaves
// Playing. Reaching the duration counts as the natural end.
func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()
	ctx, cancel := context.WithCancel(context.Background())
	c.stopTick = cancel
	go c.tick(ctx)
}

func (c *Controller) stopTickerLocked() {
	if c.stopTick != nil {
		c.stopTick()
		c.stopTick = nil
	}
}

func (c *Controller) tick(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.onTick(ctx)
		}
	}
}

func (c *Controller) onTick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || c.state != StatePlaying {
		return
	}
	c.position = c.engine.Position()
	if c.duration > 0 && c.position >= c.duration {
		c.stopLocked()
		return
	}
	c.renderLocked()
}

// handleEnded is the engine's natural-end callback.
func (c *Controller) handleEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying {
		return
	}
	c.stopLocked()
}

// handleError is the engine's playback-error callback.
func (c *Controller) handleError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport.Release(c)
	c.failLocked(err)
}

func fraction(p float64, d time.Duration) time.Duration {
	return time.Duration(p * float64(d))
}
