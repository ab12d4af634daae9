package diagnostics

import (
	"fmt"
	"sync"
	"time"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/sched"
)

// DefaultDelay is the quiet period before a requested validation runs.
const DefaultDelay = 600 * time.Millisecond

// Pipeline debounces validation per buffer and publishes the combined
// findings list.
//
// Each Request arms (or re-arms) that buffer's debouncer; a new request
// before the quiet period elapses cancels and reschedules, so at most one
// validation per buffer is pending at any instant. When a validation runs it
// re-reads the holder's current text, replaces that buffer's findings, and
// publishes the full combined list: markup then style then script, each
// validator's findings in its own order, truncated to MaxFindings.
type Pipeline struct {
	mu         sync.Mutex
	holder     *snapshot.Holder
	validators map[snapshot.BufferKind]Validator
	debouncers map[snapshot.BufferKind]*sched.Debouncer
	findings   map[snapshot.BufferKind][]Diagnostic

	delay   time.Duration
	publish func([]Diagnostic)
	report  func(error)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithDelay overrides the debounce quiet period.
func WithDelay(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithValidator replaces the validator for one buffer kind.
func WithValidator(kind snapshot.BufferKind, v Validator) PipelineOption {
	return func(p *Pipeline) {
		p.validators[kind] = v
	}
}

// WithErrorReporter sets where swallowed validator panics are recorded.
func WithErrorReporter(report func(error)) PipelineOption {
	return func(p *Pipeline) {
		p.report = report
	}
}

// NewPipeline creates a pipeline over the holder. publish receives the full
// replacement findings list on every pass; it is never called concurrently
// with itself for the same pipeline while callers stay on one event context.
func NewPipeline(holder *snapshot.Holder, publish func([]Diagnostic), opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		holder: holder,
		validators: map[snapshot.BufferKind]Validator{
			snapshot.Markup: NewMarkupValidator(),
			snapshot.Style:  StyleValidator{},
			snapshot.Script: NewScriptValidator(),
		},
		debouncers: make(map[snapshot.BufferKind]*sched.Debouncer),
		findings:   make(map[snapshot.BufferKind][]Diagnostic),
		delay:      DefaultDelay,
		publish:    publish,
		report:     func(error) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, kind := range snapshot.Kinds {
		k := kind
		p.debouncers[k] = sched.NewDebouncer(p.delay, func() { p.run(k) })
	}
	return p
}

// Request schedules a debounced validation of the given buffer.
func (p *Pipeline) Request(kind snapshot.BufferKind) {
	p.debouncers[kind].Schedule()
}

// RunNow validates the given buffer immediately, canceling any pending
// debounced run for it. Used after snippet insertion.
func (p *Pipeline) RunNow(kind snapshot.BufferKind) {
	p.debouncers[kind].Flush()
}

// Cancel drops all pending validations.
func (p *Pipeline) Cancel() {
	for _, d := range p.debouncers {
		d.Cancel()
	}
}

// Findings returns the current combined list.
func (p *Pipeline) Findings() []Diagnostic {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.combinedLocked()
}

func (p *Pipeline) run(kind snapshot.BufferKind) {
	text := p.holder.Get().Get(kind)

	found := p.validate(kind, text)

	p.mu.Lock()
	p.findings[kind] = found
	combined := p.combinedLocked()
	p.mu.Unlock()

	p.publish(combined)
}

// validate runs one validator, degrading to no findings if it panics.
func (p *Pipeline) validate(kind snapshot.BufferKind, text string) (found []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			p.report(fmt.Errorf("%s validator panic: %v", kind, r))
			found = nil
		}
	}()
	return p.validators[kind].Validate(text)
}

func (p *Pipeline) combinedLocked() []Diagnostic {
	var out []Diagnostic
	for _, kind := range snapshot.Kinds {
		out = append(out, p.findings[kind]...)
	}
	if len(out) > MaxFindings {
		out = out[:MaxFindings]
	}
	return out
}
