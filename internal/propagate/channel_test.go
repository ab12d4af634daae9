package propagate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

type recordingSink struct {
	mu        sync.Mutex
	delivered []snapshot.Snapshot
	err       error
	panics    bool
}

func (s *recordingSink) Deliver(snap snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panics {
		panic("sink exploded")
	}
	s.delivered = append(s.delivered, snap)
	return s.err
}

func (s *recordingSink) all() []snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]snapshot.Snapshot(nil), s.delivered...)
}

func TestScheduleDeliversLastOnly(t *testing.T) {
	holder := snapshot.NewHolder(snapshot.Empty())
	sink := &recordingSink{}
	ch := NewChannel(holder, sink, WithDelay(30*time.Millisecond))

	holder.Update(snapshot.Markup, "A")
	ch.Schedule()
	holder.Update(snapshot.Markup, "B")
	ch.Schedule()

	time.Sleep(90 * time.Millisecond)

	got := sink.all()
	if len(got) != 1 {
		t.Fatalf("delivered %d times, want 1", len(got))
	}
	if got[0].Markup != "B" {
		t.Errorf("delivered %q, want B (never A)", got[0].Markup)
	}
}

func TestFlushBypassesDebounce(t *testing.T) {
	holder := snapshot.NewHolder(snapshot.Empty())
	sink := &recordingSink{}
	ch := NewChannel(holder, sink, WithDelay(time.Hour))

	holder.Update(snapshot.Script, "x()")
	ch.Schedule()
	ch.Flush()

	got := sink.all()
	if len(got) != 1 {
		t.Fatalf("delivered %d times, want 1", len(got))
	}
	if got[0].Script != "x()" {
		t.Errorf("delivered %+v", got[0])
	}
}

func TestSinkErrorSwallowed(t *testing.T) {
	holder := snapshot.NewHolder(snapshot.Empty())
	sink := &recordingSink{err: errors.New("disk full")}
	var reported error
	ch := NewChannel(holder, sink, WithErrorReporter(func(err error) { reported = err }))

	ch.Flush() // must not panic or propagate

	if reported == nil {
		t.Error("sink error was not recorded")
	}
}

func TestSinkPanicSwallowed(t *testing.T) {
	holder := snapshot.NewHolder(snapshot.Empty())
	sink := &recordingSink{panics: true}
	var reported error
	ch := NewChannel(holder, sink, WithErrorReporter(func(err error) { reported = err }))

	ch.Flush() // must not crash the session

	if reported == nil {
		t.Error("sink panic was not recorded")
	}
}

func TestDeliveryReadsHolderAtFireTime(t *testing.T) {
	holder := snapshot.NewHolder(snapshot.Empty())
	sink := &recordingSink{}
	ch := NewChannel(holder, sink, WithDelay(25*time.Millisecond))

	holder.Update(snapshot.Style, "old")
	ch.Schedule()
	holder.Update(snapshot.Style, "new") // changed after scheduling

	time.Sleep(80 * time.Millisecond)

	got := sink.all()
	if len(got) != 1 || got[0].Style != "new" {
		t.Errorf("delivered %+v, want the latest holder value", got)
	}
}
