package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	Views         <-chan View
	StateChanged  <-chan StateChange
	EffectChanged <-chan EffectChange
	Error         <-chan ErrorEvent
	Done          <-chan struct{}

	// Internal write channels
	viewCh   chan View
	stateCh  chan StateChange
	effectCh chan EffectChange
	errorCh  chan ErrorEvent
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		viewCh:   make(chan View, eventBufferSize),
		stateCh:  make(chan StateChange, eventBufferSize),
		effectCh: make(chan EffectChange, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.Views = s.viewCh
	s.StateChanged = s.stateCh
	s.EffectChanged = s.effectCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendView sends a rendered view (non-blocking).
func (s *Subscription) sendView(v View) {
	select {
	case s.viewCh <- v:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendEffect(e EffectChange) {
	select {
	case s.effectCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
