package snippet

import (
	"testing"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

func TestSearchRanksActiveBufferKindFirst(t *testing.T) {
	pool := []Snippet{
		{Label: "Marquee", Kind: KindMarkup, Body: "<div class='flex'></div>"},
		{Label: "Flex row center", Kind: KindStyle, Body: ".row { display: flex; }"},
	}

	got := Search(pool, snapshot.Style, "flex", nil)
	if len(got) != 2 {
		t.Fatalf("got %d matches: %+v", len(got), got)
	}
	if got[0].Snippet.Label != "Flex row center" {
		t.Errorf("top match = %q, want the style snippet", got[0].Snippet.Label)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not descending: %d then %d", got[0].Score, got[1].Score)
	}
}

func TestSearchEmptyQueryPassesAll(t *testing.T) {
	pool := []Snippet{
		{Label: "A", Kind: KindMarkup, Body: "a"},
		{Label: "B", Kind: KindStyle, Body: "b"},
		{Label: "C", Kind: KindScript, Body: "c"},
	}

	got := Search(pool, snapshot.Markup, "", nil)
	if len(got) != 3 {
		t.Errorf("got %d matches, want all 3", len(got))
	}
}

func TestSearchNonEmptyQueryThreshold(t *testing.T) {
	pool := []Snippet{
		// Scores 0 on everything for query "zzz" while active buffer differs.
		{Label: "Plain", Kind: KindStyle, Body: "p{}"},
	}

	if got := Search(pool, snapshot.Markup, "zzz", nil); len(got) != 0 {
		t.Errorf("got %+v, want no matches below threshold", got)
	}

	// A kind match alone (50) passes the >5 threshold even without any
	// query text match.
	if got := Search(pool, snapshot.Style, "zzz", nil); len(got) != 1 {
		t.Errorf("kind-matching entry should pass the threshold, got %+v", got)
	}
}

func TestSearchScoringComponents(t *testing.T) {
	s := Snippet{
		Label:       "Flex row",
		Kind:        KindStyle,
		Description: "layout helper",
		Tags:        []string{"layout"},
		Body:        ".row{display:flex}",
	}

	fav := func(string) bool { return true }
	got := Search([]Snippet{s}, snapshot.Style, "flex", fav)
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	// 50 kind + 10 favorite + 20 label prefix + 10 substring.
	if got[0].Score != 90 {
		t.Errorf("score = %d, want 90", got[0].Score)
	}
}

func TestSearchKindAllBonus(t *testing.T) {
	pool := []Snippet{
		{Label: "Scaffold", Kind: KindAll, Body: "<div></div>"},
	}

	got := Search(pool, snapshot.Script, "", nil)
	if len(got) != 1 || got[0].Score != scoreKindAll {
		t.Errorf("got %+v, want the all-kind bonus only", got)
	}
}

func TestSearchStableOnTies(t *testing.T) {
	pool := []Snippet{
		{Label: "First", Kind: KindMarkup, Body: "1"},
		{Label: "Second", Kind: KindMarkup, Body: "2"},
		{Label: "Third", Kind: KindMarkup, Body: "3"},
	}

	got := Search(pool, snapshot.Markup, "", nil)
	for i, want := range []string{"First", "Second", "Third"} {
		if got[i].Snippet.Label != want {
			t.Errorf("position %d = %q, want %q (pool order on ties)", i, got[i].Snippet.Label, want)
		}
	}
}

func TestSearchDedupesByBody(t *testing.T) {
	pool := []Snippet{
		{Label: "Catalogue entry", Kind: KindMarkup, Body: "<p></p>"},
		{Label: "Favorited copy", Kind: KindMarkup, Body: "<p></p>"},
	}

	got := Search(pool, snapshot.Markup, "", nil)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want deduplicated 1", len(got))
	}
	if got[0].Snippet.Label != "Catalogue entry" {
		t.Errorf("kept %q, want the first occurrence", got[0].Snippet.Label)
	}
}
