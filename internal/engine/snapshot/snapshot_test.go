package snapshot

import "testing"

func TestSetIsPure(t *testing.T) {
	orig := Snapshot{Markup: "<p>", Style: "p{}", Script: "let x"}
	next := orig.Set(Style, "p{color:red}")

	if orig.Style != "p{}" {
		t.Error("Set mutated the receiver")
	}
	if next.Style != "p{color:red}" {
		t.Errorf("Set did not apply: %q", next.Style)
	}
	if next.Markup != orig.Markup || next.Script != orig.Script {
		t.Error("Set changed an unrelated buffer")
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		kind BufferKind
	}{
		{"markup", Markup},
		{"style", Style},
		{"script", Script},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Empty().Set(tt.kind, "abc")
			if got := s.Get(tt.kind); got != "abc" {
				t.Errorf("Get(%v) = %q, want %q", tt.kind, got, "abc")
			}
		})
	}
}

func TestEmptyStringsAreValid(t *testing.T) {
	s := Empty()
	for _, k := range Kinds {
		if s.Get(k) != "" {
			t.Errorf("empty snapshot has non-empty %v buffer", k)
		}
	}
}

func TestKindByIndex(t *testing.T) {
	if k, ok := KindByIndex(1); !ok || k != Style {
		t.Errorf("KindByIndex(1) = %v, %v", k, ok)
	}
	if _, ok := KindByIndex(3); ok {
		t.Error("KindByIndex(3) should be out of range")
	}
	if _, ok := KindByIndex(-1); ok {
		t.Error("KindByIndex(-1) should be out of range")
	}
}

func TestKindString(t *testing.T) {
	if Markup.String() != "markup" || Style.String() != "style" || Script.String() != "script" {
		t.Error("kind names do not match buffer names")
	}
}

func TestHolderReadsLatest(t *testing.T) {
	h := NewHolder(Snapshot{Markup: "a"})

	// Simulate a deferred callback capturing the holder, not the value.
	read := func() Snapshot { return h.Get() }

	h.Update(Markup, "b")
	h.Update(Script, "c")

	got := read()
	if got.Markup != "b" || got.Script != "c" {
		t.Errorf("holder returned stale state: %+v", got)
	}
}

func TestHolderGeneration(t *testing.T) {
	h := NewHolder(Empty())
	g0 := h.Generation()
	h.Update(Markup, "x")
	if h.Generation() == g0 {
		t.Error("generation did not advance on Update")
	}
	h.Set(Empty())
	if h.Generation() == g0+1 {
		t.Error("generation did not advance on Set")
	}
}
