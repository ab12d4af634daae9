package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	snap := snapshot.Snapshot{
		Markup: "<p>hello</p>",
		Style:  "p { color: red; }",
		Script: "console.log('hi');",
	}

	blob, err := Pack(ProjectFiles(snap))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("empty archive")
	}

	files, err := Unpack(blob)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	got, err := ReadProject(files)
	if err != nil {
		t.Fatalf("read project: %v", err)
	}
	if !got.Equal(snap) {
		t.Errorf("round trip = %+v, want %+v", got, snap)
	}
}

func TestPackDeterministic(t *testing.T) {
	files := map[string]string{"b.txt": "2", "a.txt": "1", "c.txt": "3"}

	first, err := Pack(files)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	second, err := Pack(files)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different archives")
	}
}

func TestUnpackRejectsGarbage(t *testing.T) {
	_, err := Unpack([]byte("definitely not a zip"))
	var formatErr *ImportFormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("err = %v, want ImportFormatError", err)
	}
}

func TestReadProjectRejectsUnknownFiles(t *testing.T) {
	_, err := ReadProject(map[string]string{
		MarkupFile:  "<p></p>",
		"virus.exe": "...",
	})
	var formatErr *ImportFormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("err = %v, want ImportFormatError", err)
	}
}

func TestReadProjectRejectsEmptySet(t *testing.T) {
	if _, err := ReadProject(nil); err == nil {
		t.Error("empty file set should fail")
	}
}

func TestReadProjectPartialFilesAllowed(t *testing.T) {
	got, err := ReadProject(map[string]string{StyleFile: "p{}"})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Style != "p{}" || got.Markup != "" || got.Script != "" {
		t.Errorf("got %+v", got)
	}
}
