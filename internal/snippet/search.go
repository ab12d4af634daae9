package snippet

import (
	"sort"
	"strings"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

// Scoring weights. The threshold only applies to non-empty queries: an empty
// query passes every entry, a non-empty one passes entries scoring above 5.
const (
	scoreKindMatch   = 50
	scoreKindAll     = 30
	scoreFavorite    = 10
	scoreLabelPrefix = 20
	scoreSubstring   = 10
	minQueryScore    = 5
)

// Match is one ranked search result.
type Match struct {
	Snippet Snippet
	Score   int
}

// FavoriteChecker answers whether a body is in the favorites pool. A nil
// checker means nothing is favorited.
type FavoriteChecker func(body string) bool

// Search ranks the pool against the active buffer and query.
//
// Scoring: 50 for a kind matching the active buffer, +30 for kind "all",
// +10 if favorited, +20 if the label starts with the lower-cased query,
// +10 if label, description, body or tags contain the query substring.
// Results are sorted by score descending, stable on ties so the original
// pool order survives (the catalogue is listed ahead of favorites, so
// catalogue entries win ties). Bodies are deduplicated keeping the first,
// highest-ranked occurrence.
func Search(pool []Snippet, active snapshot.BufferKind, query string, isFavorite FavoriteChecker) []Match {
	q := strings.ToLower(strings.TrimSpace(query))

	matches := make([]Match, 0, len(pool))
	for _, s := range pool {
		score := 0
		if s.Kind.Matches(active) {
			score += scoreKindMatch
		}
		if s.Kind == KindAll {
			score += scoreKindAll
		}
		if isFavorite != nil && isFavorite(s.Body) {
			score += scoreFavorite
		}
		if q != "" {
			if strings.HasPrefix(strings.ToLower(s.Label), q) {
				score += scoreLabelPrefix
			}
			if strings.Contains(haystack(s), q) {
				score += scoreSubstring
			}
			if score <= minQueryScore {
				continue
			}
		}
		matches = append(matches, Match{Snippet: s, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return dedupeMatches(matches)
}

// haystack builds the lower-cased searchable text of a snippet.
func haystack(s Snippet) string {
	parts := []string{s.Label, s.Description, s.Body}
	parts = append(parts, s.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// dedupeMatches drops later entries sharing a body with an earlier one.
func dedupeMatches(in []Match) []Match {
	seen := make(map[uint64]bool, len(in))
	out := in[:0]
	for _, m := range in {
		key := BodyKey(m.Snippet.Body)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}
