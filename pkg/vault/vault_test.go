package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestVault(t *testing.T) *Dir {
	t.Helper()
	v, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return v
}

func TestCreateReadExists(t *testing.T) {
	v := newTestVault(t)

	if v.Exists("a.md") {
		t.Fatalf("fresh vault should be empty")
	}
	if err := v.Create("a.md", "hello\n"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !v.Exists("a.md") {
		t.Fatalf("created file should exist")
	}
	got, err := v.Read("a.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "hello\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestCreateRefusesExisting(t *testing.T) {
	v := newTestVault(t)
	if err := v.Create("a.md", "x"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := v.Create("a.md", "y"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestReadMissingIsNotFound(t *testing.T) {
	v := newTestVault(t)
	if _, err := v.Read("missing.md"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAtomicUpdateAppliesFreshContent(t *testing.T) {
	v := newTestVault(t)
	if err := v.Create("a.md", "one\n"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutate the file behind the vault's back; the transaction must see the
	// fresh content, not anything the caller captured earlier.
	if err := os.WriteFile(filepath.Join(v.Base, "a.md"), []byte("two\n"), 0o644); err != nil {
		t.Fatalf("sneaky write: %v", err)
	}

	var saw string
	err := v.AtomicUpdate("a.md", func(current string) string {
		saw = current
		return current + "three\n"
	})
	if err != nil {
		t.Fatalf("atomic update: %v", err)
	}
	if saw != "two\n" {
		t.Fatalf("transaction saw stale content: %q", saw)
	}
	got, _ := v.Read("a.md")
	if got != "two\nthree\n" {
		t.Fatalf("unexpected committed content: %q", got)
	}
}

func TestAtomicUpdateMissingTarget(t *testing.T) {
	v := newTestVault(t)
	err := v.AtomicUpdate("gone.md", func(s string) string { return s })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateInSubdirectory(t *testing.T) {
	v := newTestVault(t)
	if err := v.Create("daily/2024-01-02.md", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !v.Exists("daily/2024-01-02.md") {
		t.Fatalf("nested file should exist")
	}
}
