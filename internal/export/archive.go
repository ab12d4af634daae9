// Package export packages project files into a downloadable archive and
// reads user-supplied files back into a project.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

// Project file names inside an archive.
const (
	MarkupFile = "index.html"
	StyleFile  = "styles.css"
	ScriptFile = "script.js"
)

// Pack produces a single archive blob from a filename-to-content mapping.
// Entries are written in sorted filename order so identical inputs produce
// identical blobs.
func Pack(files map[string]string) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
		if _, err := io.WriteString(f, files[name]); err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("archive close: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack reads an archive blob back into a filename-to-content mapping.
func Unpack(blob []byte) (map[string]string, error) {
	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, &ImportFormatError{Reason: "not a valid archive"}
	}

	files := make(map[string]string, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &ImportFormatError{Reason: fmt.Sprintf("unreadable entry %q", f.Name)}
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ImportFormatError{Reason: fmt.Sprintf("unreadable entry %q", f.Name)}
		}
		files[f.Name] = string(content)
	}
	return files, nil
}

// ProjectFiles maps a snapshot to its archive layout.
func ProjectFiles(snap snapshot.Snapshot) map[string]string {
	return map[string]string{
		MarkupFile: snap.Markup,
		StyleFile:  snap.Style,
		ScriptFile: snap.Script,
	}
}

// ReadProject validates a filename-to-content mapping and builds a snapshot
// from it. At least one of the three project files must be present; unknown
// filenames are rejected. On error, nothing is partially applied: callers
// get either a complete snapshot or none.
func ReadProject(files map[string]string) (snapshot.Snapshot, error) {
	if len(files) == 0 {
		return snapshot.Snapshot{}, &ImportFormatError{Reason: "no files supplied"}
	}

	known := map[string]bool{MarkupFile: true, StyleFile: true, ScriptFile: true}
	for name := range files {
		if !known[name] {
			return snapshot.Snapshot{}, &ImportFormatError{
				Reason: fmt.Sprintf("unexpected file %q", name),
			}
		}
	}

	return snapshot.Snapshot{
		Markup: files[MarkupFile],
		Style:  files[StyleFile],
		Script: files[ScriptFile],
	}, nil
}
