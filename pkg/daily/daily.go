// Package daily resolves per-day diary documents: date-named Markdown files
// inside one vault directory.
package daily

import (
	"fmt"
	"path"
	"strings"
	"time"

	"tableflip.dev/micropost/pkg/vault"
)

// FileLayout names daily documents, e.g. 2024-01-02.md.
const FileLayout = "2006-01-02"

// Notes locates and creates daily documents. A nil Notes means the daily
// document feature is unavailable.
type Notes struct {
	Vault vault.Vault

	// Dir is the vault-relative folder holding daily documents. Empty means
	// the vault root.
	Dir string

	// Now is the clock, swappable for tests. Nil means time.Now.
	Now func() time.Time
}

func (n *Notes) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// Enabled reports whether daily documents can be resolved at all.
func (n *Notes) Enabled() bool {
	return n != nil && n.Vault != nil
}

// PathFor returns the vault-relative path of the document for date.
func (n *Notes) PathFor(date time.Time) string {
	return path.Join(n.Dir, date.Format(FileLayout)+".md")
}

// Resolve returns the document path for date, creating an empty document
// when none exists yet.
func (n *Notes) Resolve(date time.Time) (string, error) {
	p := n.PathFor(date)
	if n.Vault.Exists(p) {
		return p, nil
	}
	if err := n.Vault.Create(p, ""); err != nil {
		return "", fmt.Errorf("daily: create %s: %w", p, err)
	}
	return p, nil
}

// RecentFiles returns the documents for the most recent days calendar days
// that actually have one, today first.
func (n *Notes) RecentFiles(days int) []string {
	var files []string
	today := n.now()
	for i := 0; i < days; i++ {
		p := n.PathFor(today.AddDate(0, 0, -i))
		if n.Vault.Exists(p) {
			files = append(files, p)
		}
	}
	return files
}

// DateOf extracts the calendar date a document path encodes. The second
// return is false for paths that are not daily documents.
func (n *Notes) DateOf(p string) (time.Time, bool) {
	if path.Dir(p) != path.Clean(cleanDir(n.Dir)) {
		return time.Time{}, false
	}
	name := strings.TrimSuffix(path.Base(p), ".md")
	t, err := time.ParseInLocation(FileLayout, name, n.now().Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func cleanDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
