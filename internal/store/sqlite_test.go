package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/snippet"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "code4fun.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProjectRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.LoadProject(); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v, want empty", ok, err)
	}

	want := snapshot.Snapshot{Markup: "<p>hi</p>", Style: "p{}", Script: "go()"}
	if err := s.SaveProject(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.LoadProject()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !got.Equal(want) {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestProjectSaveReplaces(t *testing.T) {
	s := openTestStore(t)

	s.SaveProject(snapshot.Snapshot{Markup: "old"})
	s.SaveProject(snapshot.Snapshot{Markup: "new"})

	got, _, _ := s.LoadProject()
	if got.Markup != "new" {
		t.Errorf("loaded %q, want the replacement", got.Markup)
	}
}

func TestSearchCacheRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.GetSearch("flexbox"); err != nil || ok {
		t.Fatalf("miss expected: ok=%v err=%v", ok, err)
	}

	raw := []byte(`{"items":[{"id":1}]}`)
	if err := s.SetSearch("flexbox", raw); err != nil {
		t.Fatalf("set: %v", err)
	}

	entry, ok, err := s.GetSearch("flexbox")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(entry.Raw) != string(raw) {
		t.Errorf("raw = %s", entry.Raw)
	}
	if time.Since(entry.FetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, want recent", entry.FetchedAt)
	}
}

func TestLessonsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		err := s.SaveLesson(Lesson{
			Title:     title,
			Project:   snapshot.Snapshot{Markup: title},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("save %s: %v", title, err)
		}
	}

	got, err := s.ListLessons()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d lessons", len(got))
	}
	if got[0].Title != "third" || got[2].Title != "first" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestSnippetPrefsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.LoadSnippetPrefs(); err != nil || ok {
		t.Fatalf("fresh prefs: ok=%v err=%v", ok, err)
	}

	want := snippet.Prefs{
		Favorites: []snippet.Snippet{{Label: "Fav", Kind: snippet.KindStyle, Body: ".f{}"}},
		Recents:   []snippet.Snippet{{Label: "Rec", Kind: snippet.KindScript, Body: "r()"}},
	}
	if err := s.SaveSnippetPrefs(want); err != nil {
		t.Fatalf("save prefs: %v", err)
	}

	got, ok, err := s.LoadSnippetPrefs()
	if err != nil || !ok {
		t.Fatalf("load prefs: ok=%v err=%v", ok, err)
	}
	if len(got.Favorites) != 1 || got.Favorites[0].Body != ".f{}" {
		t.Errorf("favorites = %+v", got.Favorites)
	}
	if len(got.Recents) != 1 || got.Recents[0].Kind != snippet.KindScript {
		t.Errorf("recents = %+v", got.Recents)
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &StorageError{Op: "save project", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("StorageError should unwrap to the cause")
	}
}
