package schedule

import "sync"

// Holder guards the schedule currently being served.  Stores are immutable
// once loaded, so readers only need the pointer; a reload builds a fresh
// Store off to the side and swaps it in wholesale.  Partial in-place
// updates are deliberately unsupported.
type Holder struct {
	mu    sync.RWMutex
	store *Store
}

// NewHolder wraps an initial store, which may be nil until the first load
// completes.
func NewHolder(initial *Store) *Holder {
	return &Holder{store: initial}
}

// Current returns the store snapshot being served right now.
func (h *Holder) Current() *Store {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store
}

// Swap replaces the served schedule with a newly loaded one.
func (h *Holder) Swap(next *Store) {
	h.mu.Lock()
	h.store = next
	h.mu.Unlock()
}
