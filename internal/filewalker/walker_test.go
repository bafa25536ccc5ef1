package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"locextract/internal/extract"
)

func writeFiles(t *testing.T, root string, names []string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("data\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWalk_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, []string{
		"a.txt",
		"b.lua",
		"c.exe",
		"noext",
		"sub/deep/d.json",
		"sub/e.bin",
	})

	w := NewWalker(extract.DefaultOptions())
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	got := make(map[string]bool)
	for _, f := range files {
		rel, _ := filepath.Rel(root, f)
		got[filepath.ToSlash(rel)] = true
	}

	want := []string{"a.txt", "b.lua", "sub/deep/d.json"}
	if len(got) != len(want) {
		t.Errorf("Walk found %v, want exactly %v", got, want)
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("Walk missed %q", name)
		}
	}
}

func TestWalk_ExtensionCaseFolded(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, []string{"upper.TXT", "mixed.Lua"})

	w := NewWalker(extract.DefaultOptions())
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if len(files) != 2 {
		t.Errorf("Walk found %d files, want 2 (case-folded match): %v", len(files), files)
	}
}

func TestWalk_CustomAllowList(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, []string{"a.txt", "b.rpy", "c.custom"})

	opts := extract.DefaultOptions().WithExtensions([]string{"custom"})
	w := NewWalker(opts)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("Walk found %d files, want 1: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "c.custom" {
		t.Errorf("Walk found %q, want c.custom", files[0])
	}
}

func TestWalk_EmptyDirectory(t *testing.T) {
	w := NewWalker(extract.DefaultOptions())
	files, err := w.Walk(t.TempDir())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Walk found %d files in empty dir, want 0", len(files))
	}
}

func TestWalk_RootNotADirectory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWalker(extract.DefaultOptions())
	if _, err := w.Walk(path); err == nil {
		t.Error("expected error for non-directory root")
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	w := NewWalker(extract.DefaultOptions())
	if _, err := w.Walk(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}
