package snapshot

import "sync"

// Holder is the single mutable cell owning the "current" snapshot.
//
// Deferred callbacks (debounced diagnostics, propagation) must re-read the
// latest value at fire time rather than close over the snapshot that existed
// when they were scheduled; Holder is that always-current source.
//
// Thread-safety: all methods are safe for concurrent use.
type Holder struct {
	mu   sync.RWMutex
	cur  Snapshot
	gen  uint64
}

// NewHolder creates a holder seeded with the given snapshot.
func NewHolder(initial Snapshot) *Holder {
	return &Holder{cur: initial}
}

// Get returns the current snapshot.
func (h *Holder) Get() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

// Set replaces the current snapshot wholesale and returns it.
func (h *Holder) Set(s Snapshot) Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur = s
	h.gen++
	return h.cur
}

// Update replaces one buffer's text and returns the resulting snapshot.
func (h *Holder) Update(kind BufferKind, text string) Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur = h.cur.Set(kind, text)
	h.gen++
	return h.cur
}

// Generation returns a counter incremented on every mutation. Useful for
// detecting whether the holder changed between a schedule and its callback.
func (h *Holder) Generation() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.gen
}
