// Package propagate delivers the latest snapshot to the external sink that
// owns persistence and preview rendering.
package propagate

import (
	"fmt"
	"time"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/sched"
)

// DefaultDelay is the debounce window for scheduled deliveries.
const DefaultDelay = 400 * time.Millisecond

// Sink receives the full current snapshot. One call per delivery.
type Sink interface {
	Deliver(snapshot.Snapshot) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(snapshot.Snapshot) error

// Deliver implements Sink.
func (f SinkFunc) Deliver(s snapshot.Snapshot) error { return f(s) }

// Channel debounces snapshot delivery to a sink.
//
// Schedule coalesces rapid calls into one delivery of whatever the holder
// contains when the quiet period elapses; Flush bypasses the debounce for
// moments where staleness would be user-visible (blur, snippet insertion,
// explicit save/export). Sink failures are recorded and swallowed; delivery
// must never crash the editing session.
type Channel struct {
	holder   *snapshot.Holder
	sink     Sink
	debounce *sched.Debouncer
	report   func(error)
}

// Option configures a Channel.
type Option func(*Channel)

// WithDelay overrides the debounce window.
func WithDelay(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.debounce = sched.NewDebouncer(d, c.deliver)
		}
	}
}

// WithErrorReporter sets where swallowed sink failures are recorded.
func WithErrorReporter(report func(error)) Option {
	return func(c *Channel) {
		c.report = report
	}
}

// NewChannel creates a channel delivering the holder's latest snapshot to
// sink.
func NewChannel(holder *snapshot.Holder, sink Sink, opts ...Option) *Channel {
	c := &Channel{
		holder: holder,
		sink:   sink,
		report: func(error) {},
	}
	c.debounce = sched.NewDebouncer(DefaultDelay, c.deliver)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule arms a debounced delivery. Only the last call before the window
// elapses results in a delivery, and the delivery reads the holder at fire
// time, never a snapshot captured at schedule time.
func (c *Channel) Schedule() {
	c.debounce.Schedule()
}

// Flush delivers immediately, canceling any pending debounced delivery.
func (c *Channel) Flush() {
	c.debounce.Flush()
}

// Cancel drops any pending delivery without firing.
func (c *Channel) Cancel() {
	c.debounce.Cancel()
}

// deliver pushes the current snapshot to the sink, swallowing failures.
func (c *Channel) deliver() {
	defer func() {
		if r := recover(); r != nil {
			c.report(fmt.Errorf("sink panic: %v", r))
		}
	}()

	if err := c.sink.Deliver(c.holder.Get()); err != nil {
		c.report(fmt.Errorf("sink delivery: %w", err))
	}
}
