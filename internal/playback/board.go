package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/voicenotes/internal/clip"
	"github.com/llehouerou/voicenotes/internal/player"
)

// loadConcurrency bounds parallel clip loads.
const loadConcurrency = 4

// EngineFactory creates the engine for one clip.
type EngineFactory func() player.Engine

// Board owns every clip controller of a page and the shared transport slot.
// It republishes controller views to subscribers and to an optional surface.
type Board struct {
	transport   *Transport
	controllers []*Controller
	surface     Surface

	mu     sync.Mutex
	last   map[int]View
	recent *Controller

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// NewBoard creates one stopped controller per clip. opts.Surface, if set,
// receives every view after subscribers do.
func NewBoard(clips []clip.Clip, newEngine EngineFactory, opts Options) *Board {
	b := &Board{
		transport: NewTransport(),
		surface:   opts.Surface,
		last:      make(map[int]View, len(clips)),
	}
	if b.surface == nil {
		b.surface = nopSurface{}
	}
	opts.Surface = SurfaceFunc(b.render)
	for i, c := range clips {
		b.controllers = append(b.controllers, NewController(i, c, newEngine(), b.transport, opts))
	}
	return b
}

// Controllers returns the board's controllers in clip order.
func (b *Board) Controllers() []*Controller { return b.controllers }

// Controller returns controller i, or nil when out of range.
func (b *Board) Controller(i int) *Controller {
	if i < 0 || i >= len(b.controllers) {
		return nil
	}
	return b.controllers[i]
}

// Len returns the number of clips.
func (b *Board) Len() int { return len(b.controllers) }

// Transport returns the shared playback slot.
func (b *Board) Transport() *Transport { return b.transport }

// Playing returns the controller currently playing, or nil.
func (b *Board) Playing() *Controller { return b.transport.Holder() }

// Current returns the playing controller, else the one most recently
// played, else the first clip.
func (b *Board) Current() *Controller {
	if h := b.transport.Holder(); h != nil {
		return h
	}
	b.mu.Lock()
	recent := b.recent
	b.mu.Unlock()
	if recent != nil {
		return recent
	}
	return b.Controller(0)
}

// LoadAll loads every clip concurrently. A clip that fails is marked
// unavailable without affecting the others; the joined failures are returned.
func (b *Board) LoadAll(ctx context.Context) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(loadConcurrency)
	for _, c := range b.controllers {
		g.Go(func() error {
			if err := c.Load(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	if len(errs) > 0 {
		slog.Warn("some clips failed to load", "failed", len(errs), "total", len(b.controllers))
	}
	return errors.Join(errs...)
}

// StopAll stops every clip.
func (b *Board) StopAll() {
	for _, c := range b.controllers {
		c.Stop()
	}
}

// Subscribe creates a new event subscription.
func (b *Board) Subscribe() *Subscription {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	sub := newSubscription()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

// render receives every controller view and derives state, effect and
// error events from the previous view of the same clip.
func (b *Board) render(v View) {
	b.mu.Lock()
	prev, seen := b.last[v.ID]
	b.last[v.ID] = v
	if v.State == StatePlaying {
		b.recent = b.Controller(v.ID)
	}
	b.mu.Unlock()

	b.subsMu.RLock()
	for _, sub := range b.subs {
		if seen && prev.State != v.State {
			sub.sendState(StateChange{Clip: v.ID, Previous: prev.State, Current: v.State})
		}
		if seen && prev.Effect != v.Effect {
			sub.sendEffect(EffectChange{Clip: v.ID, Previous: prev.Effect, Current: v.Effect})
		}
		if v.Err != nil && (!seen || prev.Err == nil) {
			sub.sendError(ErrorEvent{Clip: v.ID, Err: v.Err})
		}
		sub.sendView(v)
	}
	b.subsMu.RUnlock()

	b.surface.Render(v)
}

// Close stops and releases every clip and ends all subscriptions.
func (b *Board) Close() error {
	b.subsMu.Lock()
	if b.closed {
		b.subsMu.Unlock()
		return nil
	}
	b.closed = true
	b.subsMu.Unlock()

	var errs []error
	for _, c := range b.controllers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	b.subsMu.Lock()
	for _, sub := range b.subs {
		sub.close()
	}
	b.subs = nil
	b.subsMu.Unlock()

	return errors.Join(errs...)
}
