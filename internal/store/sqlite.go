package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
	"github.com/David-Pjs/code4fun/internal/snippet"
)

// Schema for the local stores. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS project (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	markup TEXT NOT NULL,
	style TEXT NOT NULL,
	script TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS search_cache (
	query TEXT PRIMARY KEY,
	raw BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS lessons (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	markup TEXT NOT NULL,
	style TEXT NOT NULL,
	script TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lessons_created ON lessons(created_at);
CREATE TABLE IF NOT EXISTS snippet_prefs (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	prefs TEXT NOT NULL
);
`

// SQLite implements every store interface over a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "init", Err: err}
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadProject implements ProjectStore.
func (s *SQLite) LoadProject() (snapshot.Snapshot, bool, error) {
	var snap snapshot.Snapshot
	row := s.db.QueryRow(`SELECT markup, style, script FROM project WHERE id = 1`)
	err := row.Scan(&snap.Markup, &snap.Style, &snap.Script)
	if err == sql.ErrNoRows {
		return snapshot.Snapshot{}, false, nil
	}
	if err != nil {
		return snapshot.Snapshot{}, false, &StorageError{Op: "load project", Err: err}
	}
	return snap, true, nil
}

// SaveProject implements ProjectStore.
func (s *SQLite) SaveProject(snap snapshot.Snapshot) error {
	_, err := s.db.Exec(`
		INSERT INTO project (id, markup, style, script, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			markup = excluded.markup,
			style = excluded.style,
			script = excluded.script,
			updated_at = excluded.updated_at`,
		snap.Markup, snap.Style, snap.Script, time.Now().UnixMilli())
	if err != nil {
		return &StorageError{Op: "save project", Err: err}
	}
	return nil
}

// GetSearch implements CacheStore.
func (s *SQLite) GetSearch(query string) (CachedSearch, bool, error) {
	var entry CachedSearch
	var fetchedAt int64
	row := s.db.QueryRow(`SELECT raw, fetched_at FROM search_cache WHERE query = ?`, query)
	err := row.Scan(&entry.Raw, &fetchedAt)
	if err == sql.ErrNoRows {
		return CachedSearch{}, false, nil
	}
	if err != nil {
		return CachedSearch{}, false, &StorageError{Op: "get cached search", Err: err}
	}
	entry.Query = query
	entry.FetchedAt = time.UnixMilli(fetchedAt)
	return entry, true, nil
}

// SetSearch implements CacheStore.
func (s *SQLite) SetSearch(query string, raw []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO search_cache (query, raw, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			raw = excluded.raw,
			fetched_at = excluded.fetched_at`,
		query, raw, time.Now().UnixMilli())
	if err != nil {
		return &StorageError{Op: "set cached search", Err: err}
	}
	return nil
}

// SaveLesson implements LessonStore.
func (s *SQLite) SaveLesson(l Lesson) error {
	created := l.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO lessons (title, markup, style, script, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		l.Title, l.Project.Markup, l.Project.Style, l.Project.Script, created.UnixMilli())
	if err != nil {
		return &StorageError{Op: "save lesson", Err: err}
	}
	return nil
}

// ListLessons implements LessonStore.
func (s *SQLite) ListLessons() ([]Lesson, error) {
	rows, err := s.db.Query(`
		SELECT id, title, markup, style, script, created_at
		FROM lessons ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, &StorageError{Op: "list lessons", Err: err}
	}
	defer rows.Close()

	var out []Lesson
	for rows.Next() {
		var l Lesson
		var created int64
		if err := rows.Scan(&l.ID, &l.Title, &l.Project.Markup, &l.Project.Style, &l.Project.Script, &created); err != nil {
			return nil, &StorageError{Op: "list lessons", Err: err}
		}
		l.CreatedAt = time.UnixMilli(created)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list lessons", Err: err}
	}
	return out, nil
}

// LoadSnippetPrefs implements snippet.PrefsStore.
func (s *SQLite) LoadSnippetPrefs() (snippet.Prefs, bool, error) {
	var raw string
	row := s.db.QueryRow(`SELECT prefs FROM snippet_prefs WHERE id = 1`)
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return snippet.Prefs{}, false, nil
	}
	if err != nil {
		return snippet.Prefs{}, false, &StorageError{Op: "load snippet prefs", Err: err}
	}

	var prefs snippet.Prefs
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return snippet.Prefs{}, false, &StorageError{Op: "decode snippet prefs", Err: err}
	}
	return prefs, true, nil
}

// SaveSnippetPrefs implements snippet.PrefsStore.
func (s *SQLite) SaveSnippetPrefs(prefs snippet.Prefs) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return &StorageError{Op: "encode snippet prefs", Err: err}
	}
	_, err = s.db.Exec(`
		INSERT INTO snippet_prefs (id, prefs) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET prefs = excluded.prefs`, string(raw))
	if err != nil {
		return &StorageError{Op: "save snippet prefs", Err: err}
	}
	return nil
}
