// Package sched provides the cancel-and-replace debounce primitive shared by
// the propagation channel and the diagnostics pipeline.
package sched

import (
	"sync"
	"time"
)

// Debouncer delays a callback until a quiet period has elapsed since the
// last request. Each new request cancels any pending invocation for the same
// channel and arms a new one; at most one invocation is pending at any
// instant.
//
// The callback should re-read whatever live state it needs at fire time
// rather than have values closed over at schedule time, since the state may
// change again before the timer fires.
//
// Thread-safety: all methods are safe for concurrent use.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending bool
	seq     uint64 // invalidates stale timer callbacks
	fn      func()
}

// NewDebouncer creates a debouncer firing fn after delay of quiet.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Schedule arms (or re-arms) the callback. Only the last call before the
// quiet period elapses results in an invocation.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if !d.pending || d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.mu.Unlock()
		d.fn()
	})
}

// Flush cancels any pending timer and runs the callback immediately.
// It fires even when nothing is pending, so callers can use it for
// must-deliver moments (blur, insertion, explicit save).
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
	d.mu.Unlock()
	d.fn()
}

// Cancel drops any pending invocation without firing.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

// Pending reports whether an invocation is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
