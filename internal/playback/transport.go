package playback

import "sync"

// Transport is the page-wide playback slot. At most one controller holds
// it, and only the holder may be Playing.
type Transport struct {
	mu     sync.Mutex
	holder *Controller
}

// NewTransport creates an empty slot.
func NewTransport() *Transport {
	return &Transport{}
}

// TryAcquire takes the slot for c if it is free or already held by c.
func (t *Transport) TryAcquire(c *Controller) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.holder != nil && t.holder != c {
		return false
	}
	t.holder = c
	return true
}

// Release frees the slot if c holds it.
func (t *Transport) Release(c *Controller) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.holder != c {
		return false
	}
	t.holder = nil
	return true
}

// Holder returns the controller holding the slot, or nil.
func (t *Transport) Holder() *Controller {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.holder
}
