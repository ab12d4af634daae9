// Package store defines the persistence collaborators the editing session
// consumes: the project store, the search cache, the lesson store, and
// snippet preferences. Implementations are best effort; the session keeps
// editing when any of them fail.
package store

import (
	"time"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/snippet"
)

// ProjectStore persists the current project triple.
type ProjectStore interface {
	// LoadProject returns the stored project, or ok=false when none exists.
	LoadProject() (snapshot.Snapshot, bool, error)
	// SaveProject stores the project, replacing any previous one.
	SaveProject(snapshot.Snapshot) error
}

// CachedSearch is one cached remote search response.
type CachedSearch struct {
	Query     string
	Raw       []byte
	FetchedAt time.Time
}

// CacheStore persists raw remote search responses. Staleness is judged by
// the caller; the store returns whatever it has.
type CacheStore interface {
	GetSearch(query string) (CachedSearch, bool, error)
	SetSearch(query string, raw []byte) error
}

// Lesson is one captured project state with a title.
type Lesson struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Project   snapshot.Snapshot `json:"project"`
	CreatedAt time.Time         `json:"createdAt"`
}

// LessonStore persists captured lessons.
type LessonStore interface {
	SaveLesson(Lesson) error
	// ListLessons returns lessons newest first.
	ListLessons() ([]Lesson, error)
}

// Store bundles every persistence interface the session needs.
type Store interface {
	ProjectStore
	CacheStore
	LessonStore
	snippet.PrefsStore
}
