package session

import (
	"errors"

	"github.com/David-Pjs/code4fun/internal/diagnostics"
	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/propagate"
	"github.com/David-Pjs/code4fun/internal/remote"
	"github.com/David-Pjs/code4fun/internal/store"
)

var errNoStore = errors.New("no store attached")

// settings collects construction-only options.
type settings struct {
	initial    snapshot.Snapshot
	initialSet bool
	sink       propagate.Sink
	searcher   remote.Searcher
}

// Option configures a Session during creation.
type Option func(*Session, *settings)

// WithConfig applies a configuration.
func WithConfig(cfg Config) Option {
	return func(s *Session, _ *settings) {
		s.cfg = cfg.sanitized()
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *Logger) Option {
	return func(s *Session, _ *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore attaches the persistence backend: project, lessons, snippet
// prefs and the search cache.
func WithStore(st store.Store) Option {
	return func(s *Session, _ *settings) {
		s.stores = st
	}
}

// WithSink attaches the external delivery target (preview rendering). The
// project store, when attached, is saved on every delivery regardless.
func WithSink(sink propagate.Sink) Option {
	return func(_ *Session, set *settings) {
		set.sink = sink
	}
}

// WithSurface attaches the UI input surface.
func WithSurface(surface Surface) Option {
	return func(s *Session, _ *settings) {
		if surface != nil {
			s.surface = surface
		}
	}
}

// WithInitialProject seeds the session with an explicit project instead of
// loading from the store.
func WithInitialProject(snap snapshot.Snapshot) Option {
	return func(_ *Session, set *settings) {
		set.initial = snap
		set.initialSet = true
	}
}

// WithDiagnosticsHandler sets the callback receiving the full replacement
// findings list after every validation pass.
func WithDiagnosticsHandler(fn func([]diagnostics.Diagnostic)) Option {
	return func(s *Session, _ *settings) {
		if fn != nil {
			s.onDiagnostics = fn
		}
	}
}

// WithSearcher attaches the question-search backend for the docs panel.
func WithSearcher(searcher remote.Searcher) Option {
	return func(_ *Session, set *settings) {
		set.searcher = searcher
	}
}
