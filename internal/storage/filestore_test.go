package storage

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")

	fs, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if fs.Root() != root {
		t.Errorf("Root() = %s, want %s", fs.Root(), root)
	}

	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("root not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("root is not a directory")
	}
}

func TestSave(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	content := []byte("%PDF-1.4 test document")
	rel, err := fs.Save(7, "SPK", "spk.pdf", content)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if rel != filepath.Join("project_7", "spk", "spk.pdf") {
		t.Errorf("unexpected relative path %s", rel)
	}

	data, err := os.ReadFile(filepath.Join(fs.Root(), rel))
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("content mismatch: %q", data)
	}

	// No temp files may survive a successful save.
	entries, err := os.ReadDir(filepath.Dir(filepath.Join(fs.Root(), rel)))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", entry.Name())
		}
	}
}

// TestSave_StripsPath checks a traversal-style name is reduced to its
// base before it touches the disk.
func TestSave_StripsPath(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rel, err := fs.Save(1, "Report", "../../etc/passwd.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rel != filepath.Join("project_1", "report", "passwd.pdf") {
		t.Errorf("unexpected relative path %s", rel)
	}
}

func TestSave_OverwritesInPlace(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := fs.Save(1, "SPK", "spk.pdf", []byte("old")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	rel, err := fs.Save(1, "SPK", "spk.pdf", []byte("new"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(fs.Root(), rel))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
}

func TestOpenAndExists(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rel, err := fs.Save(2, "BAST", "bast.pdf", []byte("payload"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !fs.Exists(rel) {
		t.Error("Exists = false for a saved file")
	}
	if fs.Exists(filepath.Join("project_2", "bast", "other.pdf")) {
		t.Error("Exists = true for a missing file")
	}

	rc, err := fs.Open(rel)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}
}

func TestRemove(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rel, err := fs.Save(3, "Report", "report.pdf", []byte("r"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := fs.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if fs.Exists(rel) {
		t.Error("file still exists after Remove")
	}

	// A second removal reports the missing file distinctly.
	if err := fs.Remove(rel); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Remove of missing file: %v, want fs.ErrNotExist", err)
	}
}

func TestRemoveProject(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := fs.Save(4, "SPK", "a.pdf", []byte("a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := fs.Save(4, "BAST", "b.pdf", []byte("b")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := fs.RemoveProject(4); err != nil {
		t.Fatalf("RemoveProject: %v", err)
	}
	if _, err := os.Stat(filepath.Join(fs.Root(), "project_4")); !os.IsNotExist(err) {
		t.Error("project directory still present")
	}

	// Removing a project with no directory is fine.
	if err := fs.RemoveProject(99); err != nil {
		t.Errorf("RemoveProject on missing dir: %v", err)
	}
}

func TestCategorySlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"SPK", "spk"},
		{"Form Tim Project", "form_tim_project"},
		{"Form Time Schedule", "form_time_schedule"},
		{" BAST ", "bast"},
		{"###", "misc"},
		{"", "misc"},
	}
	for _, tc := range cases {
		if got := CategorySlug(tc.in); got != tc.want {
			t.Errorf("CategorySlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
