package store

import (
	"sort"
	"sync"
	"time"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/snippet"
)

// Memory is an in-process implementation of every store interface. It backs
// tests and serves as the fallback when the durable store cannot be opened:
// the user keeps editing, persistence is simply lost at teardown.
type Memory struct {
	mu         sync.Mutex
	project    snapshot.Snapshot
	hasProject bool
	cache      map[string]CachedSearch
	lessons    []Lesson
	nextLesson int64
	prefs      snippet.Prefs
	hasPrefs   bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cache:      make(map[string]CachedSearch),
		nextLesson: 1,
	}
}

// LoadProject implements ProjectStore.
func (m *Memory) LoadProject() (snapshot.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.project, m.hasProject, nil
}

// SaveProject implements ProjectStore.
func (m *Memory) SaveProject(snap snapshot.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.project = snap
	m.hasProject = true
	return nil
}

// GetSearch implements CacheStore.
func (m *Memory) GetSearch(query string) (CachedSearch, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.cache[query]
	return entry, ok, nil
}

// SetSearch implements CacheStore.
func (m *Memory) SetSearch(query string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[query] = CachedSearch{Query: query, Raw: raw, FetchedAt: time.Now()}
	return nil
}

// SetSearchAt stores a cache entry with an explicit fetch time. Tests use it
// to fabricate stale entries.
func (m *Memory) SetSearchAt(query string, raw []byte, fetchedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[query] = CachedSearch{Query: query, Raw: raw, FetchedAt: fetchedAt}
}

// SaveLesson implements LessonStore.
func (m *Memory) SaveLesson(l Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.nextLesson
	m.nextLesson++
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	m.lessons = append(m.lessons, l)
	return nil
}

// ListLessons implements LessonStore.
func (m *Memory) ListLessons() ([]Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]Lesson(nil), m.lessons...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// LoadSnippetPrefs implements snippet.PrefsStore.
func (m *Memory) LoadSnippetPrefs() (snippet.Prefs, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs, m.hasPrefs, nil
}

// SaveSnippetPrefs implements snippet.PrefsStore.
func (m *Memory) SaveSnippetPrefs(prefs snippet.Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = prefs
	m.hasPrefs = true
	return nil
}
