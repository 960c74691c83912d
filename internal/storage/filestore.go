// Package storage owns the on-disk attachment tree. Files live under
// <root>/project_<id>/<category-slug>/<file name>; everything above the
// root is opaque to the rest of the application, which only ever holds
// relative paths handed out by Save.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type FileStore struct {
	root string
}

// New creates the root directory if needed and returns a store over it.
func New(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &FileStore{root: root}, nil
}

func (fs *FileStore) Root() string {
	return fs.root
}

// CategorySlug turns a category label into a directory name:
// lower-cased, spaces collapsed to underscores, anything outside
// [a-z0-9_-] dropped. An empty result falls back to "misc".
func CategorySlug(category string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(category)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "misc"
	}
	return b.String()
}

func projectDir(projectID uint) string {
	return fmt.Sprintf("project_%d", projectID)
}

// Save writes content under the project/category directory and returns
// the path relative to the store root. The bytes go to a temporary
// sibling first and are renamed into place, so a crash mid-write never
// leaves a half-written file under the final name.
func (fs *FileStore) Save(projectID uint, category, fileName string, content []byte) (string, error) {
	fileName = filepath.Base(fileName)
	if fileName == "." || fileName == ".." || fileName == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	rel := filepath.Join(projectDir(projectID), CategorySlug(category), fileName)
	full := filepath.Join(fs.root, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", rel, err)
	}

	tmp := full + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize %s: %w", rel, err)
	}

	return rel, nil
}

// Open returns a reader over a stored file.
func (fs *FileStore) Open(relPath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(fs.root, relPath))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Exists reports whether the relative path resolves to a regular file.
func (fs *FileStore) Exists(relPath string) bool {
	info, err := os.Stat(filepath.Join(fs.root, relPath))
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes a stored file. The raw os error is returned so
// callers can distinguish a missing file (fs.ErrNotExist) from a real
// I/O failure.
func (fs *FileStore) Remove(relPath string) error {
	return os.Remove(filepath.Join(fs.root, relPath))
}

// RemoveProject deletes a project's whole directory tree. Removing a
// directory that never existed is not an error.
func (fs *FileStore) RemoveProject(projectID uint) error {
	return os.RemoveAll(filepath.Join(fs.root, projectDir(projectID)))
}
