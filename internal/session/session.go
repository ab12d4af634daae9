// Package session wires the editing-session engine together: buffer state,
// undo/redo history, debounced diagnostics and propagation, snippet
// insertion, and input routing. A Session owns all transient editing state;
// construct one per mounted editor, discard it on unmount.
package session

import (
	"context"
	"sync"

	"github.com/David-Pjs/code4fun/internal/diagnostics"
	"github.com/David-Pjs/code4fun/internal/engine/history"
	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/export"
	"github.com/David-Pjs/code4fun/internal/input"
	"github.com/David-Pjs/code4fun/internal/propagate"
	"github.com/David-Pjs/code4fun/internal/remote"
	"github.com/David-Pjs/code4fun/internal/sched"
	"github.com/David-Pjs/code4fun/internal/snippet"
	"github.com/David-Pjs/code4fun/internal/store"
)

// Session is the editing-session engine.
type Session struct {
	cfg    Config
	logger *Logger

	holder  *snapshot.Holder
	history *history.History
	coord   *input.Coordinator
	diags   *diagnostics.Pipeline
	channel *propagate.Channel
	settle  *sched.Debouncer
	library *snippet.Library
	surface Surface
	browser *remote.Browser

	stores store.Store

	mu           sync.Mutex
	snippetQuery string

	onDiagnostics func([]diagnostics.Diagnostic)
}

// New creates a session. The initial project comes from WithInitialProject,
// else the project store, else an empty triple. Storage failures during
// construction are logged and degraded to the in-memory default; they never
// prevent the session from starting.
func New(opts ...Option) *Session {
	s := &Session{
		cfg:           DefaultConfig(),
		surface:       nopSurface{},
		onDiagnostics: func([]diagnostics.Diagnostic) {},
	}

	var settings settings
	for _, opt := range opts {
		opt(s, &settings)
	}

	if s.logger == nil {
		s.logger = NewLogger(ParseLogLevel(s.cfg.LogLevel), nil)
	}
	log := s.logger.WithComponent("session")

	initial := snapshot.Empty()
	switch {
	case settings.initialSet:
		initial = settings.initial
	case s.stores != nil:
		snap, ok, err := s.stores.LoadProject()
		if err != nil {
			log.Warn("load project failed, starting empty: %v", err)
		} else if ok {
			initial = snap
		}
	}

	s.holder = snapshot.NewHolder(initial)
	s.history = history.New(initial, history.WithCapacity(s.cfg.HistoryCapacity))
	s.coord = input.New()

	libOpts := []snippet.LibraryOption{
		snippet.WithErrorReporter(func(err error) {
			log.Warn("snippet prefs: %v", err)
		}),
	}
	if s.stores != nil {
		libOpts = append(libOpts, snippet.WithStore(s.stores))
	}
	s.library = snippet.NewLibrary(libOpts...)

	s.diags = diagnostics.NewPipeline(s.holder, s.publishDiagnostics,
		diagnostics.WithDelay(s.cfg.diagnosticsDelay()),
		diagnostics.WithErrorReporter(func(err error) {
			log.Warn("diagnostics: %v", err)
		}))

	s.channel = propagate.NewChannel(s.holder, s.buildSink(settings.sink),
		propagate.WithDelay(s.cfg.propagateDelay()),
		propagate.WithErrorReporter(func(err error) {
			log.Warn("propagation: %v", err)
		}))

	s.settle = sched.NewDebouncer(s.cfg.settleDelay(), s.recordSettled)

	if settings.searcher != nil {
		s.browser = remote.NewBrowser(settings.searcher)
	}

	return s
}

// buildSink combines the project store and any external sink into one
// delivery target. Each target's failure is independent; both always see
// the snapshot.
func (s *Session) buildSink(external propagate.Sink) propagate.Sink {
	log := s.logger.WithComponent("sink")
	return propagate.SinkFunc(func(snap snapshot.Snapshot) error {
		if s.stores != nil {
			if err := s.stores.SaveProject(snap); err != nil {
				// Best effort: the holder keeps the state in memory and
				// editing continues.
				log.Warn("save project: %v", err)
			}
		}
		if external != nil {
			return external.Deliver(snap)
		}
		return nil
	})
}

// Snapshot returns the current buffer triple.
func (s *Session) Snapshot() snapshot.Snapshot {
	return s.holder.Get()
}

// ActiveBuffer returns the buffer edits currently target.
func (s *Session) ActiveBuffer() snapshot.BufferKind {
	return s.coord.ActiveBuffer()
}

// Coordinator exposes the input coordinator for panel and composition
// events coming from the UI layer.
func (s *Session) Coordinator() *input.Coordinator {
	return s.coord
}

// Diagnostics returns the current findings list.
func (s *Session) Diagnostics() []diagnostics.Diagnostic {
	return s.diags.Findings()
}

// Browser returns the docs-panel search state, or nil when no question
// searcher was attached.
func (s *Session) Browser() *remote.Browser {
	return s.browser
}

// Library returns the snippet library.
func (s *Session) Library() *snippet.Library {
	return s.library
}

// Edit applies one live edit to a buffer: the snapshot updates immediately,
// and on settle a history entry is recorded and diagnostics are scheduled.
// While an IME composition is in progress only the snapshot updates;
// history and diagnostics wait for the composition to end.
func (s *Session) Edit(kind snapshot.BufferKind, text string) {
	s.holder.Update(kind, text)

	if s.coord.Composing() {
		return
	}

	s.settle.Schedule()
	s.diags.Request(kind)
	s.channel.Schedule()
}

// EndComposition finishes an IME composition: the composed text, already in
// the snapshot, now becomes a normal settled edit.
func (s *Session) EndComposition() {
	s.coord.EndComposition()
	s.settle.Schedule()
	s.diags.Request(s.coord.ActiveBuffer())
	s.channel.Schedule()
}

// recordSettled commits one history entry for the burst that just went
// quiet. It re-reads the holder; the burst may have continued after the
// timer was armed.
func (s *Session) recordSettled() {
	s.history.Record(s.holder.Get(), history.RecordOptions{})
}

// Undo restores the previous history entry. The caret moves to the end of
// the active buffer; mid-text caret positions are not preserved across
// undo/redo.
func (s *Session) Undo() bool {
	s.settle.Cancel()
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo re-applies the most recently undone entry.
func (s *Session) Redo() bool {
	s.settle.Cancel()
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) restore(snap snapshot.Snapshot) {
	s.holder.Set(snap)

	active := s.coord.ActiveBuffer()
	end := len(snap.Get(active))
	s.surface.SetSelection(active, end, end)
	s.surface.Focus(active)

	for _, kind := range snapshot.Kinds {
		s.diags.Request(kind)
	}
	s.channel.Schedule()
}

// InsertOptions controls snippet insertion.
type InsertOptions struct {
	// KeepOpen leaves the snippet panel open for repeated insertion.
	KeepOpen bool
}

// InsertSnippet splices a snippet into its target buffer at the caret, as
// if pasted. The buffer's tab becomes active when the snippet targets a
// different one; kind "all" always targets markup. The insertion forces a
// history entry, an immediate propagation flush, an immediate diagnostics
// pass for the affected buffer, and a recents entry.
func (s *Session) InsertSnippet(sn snippet.Snippet, opts InsertOptions) {
	target := sn.Kind.Buffer()
	if target != s.coord.ActiveBuffer() || sn.Kind == snippet.KindAll {
		s.coord.SetActiveBuffer(target)
	}

	body := snippet.Normalize(sn.Body, sn.Kind)
	text := s.holder.Get().Get(target)

	start, end, ok := s.surface.Selection(target)
	if !ok {
		start, end = len(text), len(text)
	}
	start, end = clampRange(start, end, len(text))

	s.holder.Update(target, text[:start]+body+text[end:])

	s.settle.Cancel()
	s.history.Record(s.holder.Get(), history.RecordOptions{})
	s.channel.Flush()

	caret := start + len(body)
	s.surface.SetSelection(target, caret, caret)
	s.surface.Focus(target)

	s.library.PushRecent(sn)

	if !opts.KeepOpen {
		s.coord.ClosePanel()
	}

	s.diags.RunNow(target)
}

// SetSnippetQuery updates the snippet panel's search text.
func (s *Session) SetSnippetQuery(query string) {
	s.mu.Lock()
	s.snippetQuery = query
	s.mu.Unlock()
}

// SearchSnippets ranks the library pool against the current query and
// active buffer.
func (s *Session) SearchSnippets() []snippet.Match {
	s.mu.Lock()
	query := s.snippetQuery
	s.mu.Unlock()
	return snippet.Search(s.library.Pool(), s.coord.ActiveBuffer(), query, s.library.IsFavorite)
}

// HandleKey routes one key chord through the coordinator and performs the
// resulting command. It returns the dispatched command.
func (s *Session) HandleKey(chord input.Chord) input.Command {
	cmd := s.coord.Dispatch(chord)

	switch cmd.Action {
	case input.ActionUndo:
		s.Undo()
	case input.ActionRedo:
		s.Redo()
	case input.ActionSwitchBuffer:
		s.surface.Focus(cmd.Buffer)
	case input.ActionInsertTop:
		s.insertTop(false)
	case input.ActionInsertTopKeepOpen:
		s.insertTop(true)
	}
	return cmd
}

func (s *Session) insertTop(keepOpen bool) {
	matches := s.SearchSnippets()
	if len(matches) == 0 {
		return
	}
	s.InsertSnippet(matches[0].Snippet, InsertOptions{KeepOpen: keepOpen})
}

// Blur flushes propagation immediately; a stale preview or lost save after
// the user leaves the editor would be visible.
func (s *Session) Blur() {
	s.settle.Flush()
	s.channel.Flush()
}

// Reset replaces the whole project: the holder takes snap, history reseeds
// to a single baseline entry, and propagation flushes. Used for external
// state resets (loading a lesson, importing a project baseline).
func (s *Session) Reset(snap snapshot.Snapshot) {
	s.settle.Cancel()
	s.holder.Set(snap)
	s.history.Reset(snap)
	for _, kind := range snapshot.Kinds {
		s.diags.Request(kind)
	}
	s.channel.Flush()
}

// Export flushes propagation and packs the current project into an archive
// blob.
func (s *Session) Export() ([]byte, error) {
	s.settle.Flush()
	s.channel.Flush()
	return export.Pack(export.ProjectFiles(s.holder.Get()))
}

// Import validates a filename-to-content mapping and applies it as a new
// edit. On a format error nothing changes; the session state is untouched.
func (s *Session) Import(files map[string]string) error {
	snap, err := export.ReadProject(files)
	if err != nil {
		return err
	}

	s.settle.Cancel()
	s.holder.Set(snap)
	s.history.Record(snap, history.RecordOptions{})
	for _, kind := range snapshot.Kinds {
		s.diags.Request(kind)
	}
	s.channel.Flush()
	return nil
}

// SaveLesson captures the current project under a title.
func (s *Session) SaveLesson(title string) error {
	if s.stores == nil {
		return &store.StorageError{Op: "save lesson", Err: errNoStore}
	}
	return s.stores.SaveLesson(store.Lesson{
		Title:   title,
		Project: s.holder.Get(),
	})
}

// Lessons lists captured lessons, newest first.
func (s *Session) Lessons() ([]store.Lesson, error) {
	if s.stores == nil {
		return nil, nil
	}
	return s.stores.ListLessons()
}

// SearchQuestions starts an asynchronous docs-panel search.
func (s *Session) SearchQuestions(ctx context.Context, query string) {
	if s.browser == nil {
		return
	}
	s.browser.Search(ctx, query)
}

// Close cancels all pending timers. The session must not be used after
// Close.
func (s *Session) Close() {
	s.settle.Cancel()
	s.diags.Cancel()
	s.channel.Cancel()
}

func (s *Session) publishDiagnostics(ds []diagnostics.Diagnostic) {
	s.onDiagnostics(ds)
}

// clampRange bounds a selection to the text length and orders it.
func clampRange(start, end, max int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if start > max {
		start = max
	}
	if end > max {
		end = max
	}
	if start > end {
		start, end = end, start
	}
	return start, end
}
