package snippet

import (
	"errors"
	"fmt"
	"testing"
)

type memPrefs struct {
	prefs  Prefs
	loaded bool
	fail   bool
	saves  int
}

func (m *memPrefs) LoadSnippetPrefs() (Prefs, bool, error) {
	if m.fail {
		return Prefs{}, false, errors.New("load failed")
	}
	return m.prefs, m.loaded, nil
}

func (m *memPrefs) SaveSnippetPrefs(p Prefs) error {
	if m.fail {
		return errors.New("save failed")
	}
	m.prefs = p
	m.loaded = true
	m.saves++
	return nil
}

func TestToggleFavorite(t *testing.T) {
	l := NewLibrary()
	s := Snippet{Label: "X", Kind: KindStyle, Body: ".x{}"}

	if !l.ToggleFavorite(s) {
		t.Error("first toggle should favorite")
	}
	if !l.IsFavorite(s.Body) {
		t.Error("IsFavorite should be true after add")
	}
	if l.ToggleFavorite(s) {
		t.Error("second toggle should unfavorite")
	}
	if l.IsFavorite(s.Body) {
		t.Error("IsFavorite should be false after remove")
	}
}

func TestFavoritesCapacity(t *testing.T) {
	l := NewLibrary()
	for i := 0; i < MaxFavorites+5; i++ {
		l.ToggleFavorite(Snippet{Label: "f", Body: fmt.Sprintf("body-%d", i)})
	}

	favs := l.Favorites()
	if len(favs) != MaxFavorites {
		t.Fatalf("favorites = %d, want %d", len(favs), MaxFavorites)
	}
	// Oldest dropped.
	if l.IsFavorite("body-0") {
		t.Error("oldest favorite should have been evicted")
	}
	if !l.IsFavorite(fmt.Sprintf("body-%d", MaxFavorites+4)) {
		t.Error("newest favorite missing")
	}
}

func TestRecentsNewestFirstAndDeduped(t *testing.T) {
	l := NewLibrary()
	a := Snippet{Label: "A", Body: "a"}
	b := Snippet{Label: "B", Body: "b"}

	l.PushRecent(a)
	l.PushRecent(b)
	l.PushRecent(a) // same body again: moves to front

	got := l.Recents()
	if len(got) != 2 {
		t.Fatalf("recents = %d entries, want 2", len(got))
	}
	if got[0].Body != "a" || got[1].Body != "b" {
		t.Errorf("order = [%s %s], want newest occurrence first", got[0].Body, got[1].Body)
	}
}

func TestRecentsCapacity(t *testing.T) {
	l := NewLibrary()
	for i := 0; i < MaxRecents+3; i++ {
		l.PushRecent(Snippet{Body: fmt.Sprintf("r-%d", i)})
	}

	got := l.Recents()
	if len(got) != MaxRecents {
		t.Fatalf("recents = %d, want %d", len(got), MaxRecents)
	}
	if got[0].Body != fmt.Sprintf("r-%d", MaxRecents+2) {
		t.Errorf("front = %s, want the newest", got[0].Body)
	}
}

func TestLibraryPersistsThroughStore(t *testing.T) {
	store := &memPrefs{}
	l := NewLibrary(WithStore(store))
	l.ToggleFavorite(Snippet{Label: "X", Body: ".x{}"})
	l.PushRecent(Snippet{Label: "Y", Body: "y()"})

	if store.saves != 2 {
		t.Errorf("saves = %d, want 2", store.saves)
	}

	// A fresh library sees the persisted state.
	l2 := NewLibrary(WithStore(store))
	if !l2.IsFavorite(".x{}") {
		t.Error("favorite did not survive reload")
	}
	if rec := l2.Recents(); len(rec) != 1 || rec[0].Body != "y()" {
		t.Errorf("recents after reload = %+v", rec)
	}
}

func TestLibraryStoreFailureSwallowed(t *testing.T) {
	var reported []error
	store := &memPrefs{fail: true}
	l := NewLibrary(WithStore(store), WithErrorReporter(func(err error) {
		reported = append(reported, err)
	}))

	// In-memory state must stay usable despite the failing store.
	l.ToggleFavorite(Snippet{Body: ".x{}"})
	if !l.IsFavorite(".x{}") {
		t.Error("in-memory favorite lost on store failure")
	}
	if len(reported) == 0 {
		t.Error("store failures were not recorded")
	}
}

func TestPoolOrdersCatalogueBeforeFavorites(t *testing.T) {
	l := NewLibrary()
	l.ToggleFavorite(Snippet{Label: "user fav", Body: "unique-user-body"})

	pool := l.Pool()
	catalogueLen := len(Catalogue())
	if len(pool) != catalogueLen+1 {
		t.Fatalf("pool = %d entries, want %d", len(pool), catalogueLen+1)
	}
	if pool[catalogueLen].Label != "user fav" {
		t.Error("favorites should follow the catalogue in the pool")
	}
}

func TestCatalogueImmutable(t *testing.T) {
	first := Catalogue()
	first[0].Label = "mutated"
	if Catalogue()[0].Label == "mutated" {
		t.Error("catalogue entries leaked mutable state")
	}
}
