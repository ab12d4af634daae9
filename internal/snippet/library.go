package snippet

import (
	"sync"
)

// Capacity bounds for the user-curated pools.
const (
	MaxFavorites = 30
	MaxRecents   = 8
)

// Prefs is the persisted user state: curated favorites and the
// most-recently-inserted list.
type Prefs struct {
	Favorites []Snippet `json:"favorites"`
	Recents   []Snippet `json:"recents"`
}

// PrefsStore persists favorites and recents across sessions.
type PrefsStore interface {
	LoadSnippetPrefs() (Prefs, bool, error)
	SaveSnippetPrefs(Prefs) error
}

// Library owns the three snippet pools: the fixed catalogue, favorites
// (capacity 30, deduplicated by body) and recents (capacity 8, newest first,
// deduplicated by body with the newest occurrence winning its position).
//
// Persistence is best effort: store failures are reported and the in-memory
// state stays authoritative for the rest of the session.
type Library struct {
	mu        sync.Mutex
	catalogue []Snippet
	favorites []Snippet
	recents   []Snippet
	store     PrefsStore
	report    func(error)
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithStore attaches a persistence backend.
func WithStore(store PrefsStore) LibraryOption {
	return func(l *Library) {
		l.store = store
	}
}

// WithErrorReporter sets where swallowed store failures are recorded.
func WithErrorReporter(report func(error)) LibraryOption {
	return func(l *Library) {
		l.report = report
	}
}

// NewLibrary creates a library over the built-in catalogue, loading any
// persisted favorites and recents from the store.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		catalogue: Catalogue(),
		report:    func(error) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store != nil {
		prefs, ok, err := l.store.LoadSnippetPrefs()
		if err != nil {
			l.report(err)
		} else if ok {
			l.favorites = clampDedup(prefs.Favorites, MaxFavorites)
			l.recents = clampDedup(prefs.Recents, MaxRecents)
		}
	}
	return l
}

// Pool returns the searchable pool: catalogue entries first, then favorites.
// Catalogue order before favorites means catalogue wins score ties.
func (l *Library) Pool() []Snippet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Snippet, 0, len(l.catalogue)+len(l.favorites))
	out = append(out, l.catalogue...)
	out = append(out, l.favorites...)
	return out
}

// Favorites returns the current favorites.
func (l *Library) Favorites() []Snippet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Snippet(nil), l.favorites...)
}

// Recents returns the most-recently-inserted snippets, newest first.
func (l *Library) Recents() []Snippet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Snippet(nil), l.recents...)
}

// IsFavorite reports whether a snippet with this body is favorited.
func (l *Library) IsFavorite(body string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isFavoriteLocked(body)
}

func (l *Library) isFavoriteLocked(body string) bool {
	key := BodyKey(body)
	for _, f := range l.favorites {
		if BodyKey(f.Body) == key {
			return true
		}
	}
	return false
}

// ToggleFavorite adds or removes a favorite, deduplicated by body, and
// reports whether the snippet is favorited afterwards. Adding past capacity
// drops the oldest favorite.
func (l *Library) ToggleFavorite(s Snippet) bool {
	l.mu.Lock()

	key := BodyKey(s.Body)
	for i, f := range l.favorites {
		if BodyKey(f.Body) == key {
			l.favorites = append(l.favorites[:i], l.favorites[i+1:]...)
			l.mu.Unlock()
			l.persist()
			return false
		}
	}

	l.favorites = append(l.favorites, s)
	if len(l.favorites) > MaxFavorites {
		l.favorites = append(l.favorites[:0], l.favorites[len(l.favorites)-MaxFavorites:]...)
	}
	l.mu.Unlock()
	l.persist()
	return true
}

// PushRecent prepends an inserted snippet to the recents list. An existing
// entry with the same body moves to the front (newest occurrence wins);
// the list is capped at MaxRecents.
func (l *Library) PushRecent(s Snippet) {
	l.mu.Lock()

	key := BodyKey(s.Body)
	kept := make([]Snippet, 0, len(l.recents)+1)
	kept = append(kept, s)
	for _, r := range l.recents {
		if BodyKey(r.Body) != key {
			kept = append(kept, r)
		}
	}
	if len(kept) > MaxRecents {
		kept = kept[:MaxRecents]
	}
	l.recents = kept
	l.mu.Unlock()

	l.persist()
}

// persist writes the current prefs, swallowing failures.
func (l *Library) persist() {
	if l.store == nil {
		return
	}
	l.mu.Lock()
	prefs := Prefs{
		Favorites: append([]Snippet(nil), l.favorites...),
		Recents:   append([]Snippet(nil), l.recents...),
	}
	l.mu.Unlock()

	if err := l.store.SaveSnippetPrefs(prefs); err != nil {
		l.report(err)
	}
}

// clampDedup drops body duplicates (first occurrence wins) and enforces a
// capacity when loading persisted state.
func clampDedup(in []Snippet, capacity int) []Snippet {
	seen := make(map[uint64]bool, len(in))
	out := make([]Snippet, 0, len(in))
	for _, s := range in {
		key := BodyKey(s.Body)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == capacity {
			break
		}
	}
	return out
}
