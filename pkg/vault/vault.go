// Package vault is the document store the codecs write through: plain
// Markdown files under one base directory, with per-file atomic
// read-modify-write transactions and a change watcher.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound reports a mutation addressed at a document that does not
// exist. The caller's in-memory state must be left untouched.
var ErrNotFound = errors.New("vault: file not found")

// ErrExists reports a create against a path that already holds a document.
var ErrExists = errors.New("vault: file already exists")

// Vault is the narrow storage contract the engine consumes.
type Vault interface {
	// Read returns the current content of the document at path.
	Read(path string) (string, error)

	// AtomicUpdate applies fn to the document's current content and commits
	// the result indivisibly. fn is invoked exactly once, with content read
	// at commit time; all position-finding logic must run inside fn.
	AtomicUpdate(path string, fn func(current string) string) error

	// Create writes a new document. It fails with ErrExists if one is
	// already present.
	Create(path, initial string) error

	// Exists reports whether a document is present at path.
	Exists(path string) bool
}

// Dir is a Vault over a directory tree.
type Dir struct {
	Base string
}

// NewDir ensures base exists and returns a Vault rooted there.
func NewDir(base string) (*Dir, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("vault: ensure base path: %w", err)
	}
	return &Dir{Base: base}, nil
}

func (v *Dir) abs(path string) string {
	return filepath.Join(v.Base, filepath.FromSlash(path))
}

func (v *Dir) Read(path string) (string, error) {
	raw, err := os.ReadFile(v.abs(path))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", path, err)
	}
	return string(raw), nil
}

func (v *Dir) AtomicUpdate(path string, fn func(string) string) error {
	abs := v.abs(path)
	raw, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("vault: read %s: %w", path, err)
	}

	updated := fn(string(raw))

	// Write to a temp file in the same directory, then rename over the
	// target so readers never observe a partial write.
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("vault: write temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("vault: commit %s: %w", path, err)
	}
	return nil
}

func (v *Dir) Create(path, initial string) error {
	abs := v.abs(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("vault: ensure directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return fmt.Errorf("vault: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(initial); err != nil {
		return fmt.Errorf("vault: write %s: %w", path, err)
	}
	return nil
}

func (v *Dir) Exists(path string) bool {
	info, err := os.Stat(v.abs(path))
	return err == nil && !info.IsDir()
}
