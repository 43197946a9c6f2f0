package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that the document at Path (vault-relative, slash-separated)
// was modified outside a transaction the consumer initiated.
type Event struct {
	Path string
}

// DebounceWindow is how long the watcher waits after the last write to a
// document before reporting it. Editors emit bursts of change events; only
// the trailing one survives.
const DebounceWindow = 300 * time.Millisecond

// Watch streams modification events for Markdown documents until ctx is
// cancelled. Callers should drain the returned channel to avoid dropped
// events. The channel closes once ctx is done or the watcher fails.
func (v *Dir) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(v.Base, 0o755); err != nil {
		return nil, fmt.Errorf("vault: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("vault: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "vault: watcher close: %v\n", err)
			}
		})
	}

	dirs, err := collectDirs(v.Base)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("vault: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("vault: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop rather than block the watcher goroutine during
				// filesystem storms; a later event catches the consumer up.
			}
		}

		debounce := newDebouncer(DebounceWindow)
		defer debounce.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// New directories must be added to the watch at runtime
					// to capture subsequent writes beneath them.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								fmt.Fprintf(os.Stderr, "vault: watch %s: %v\n", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						continue
					}
				}

				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				rel := v.relPath(evt.Name)
				if rel == "" || !strings.HasSuffix(rel, ".md") {
					continue
				}
				debounce.Enqueue(Event{Path: rel}, send)
			}
		}
	}()

	return events, nil
}

func (v *Dir) relPath(name string) string {
	rel, err := filepath.Rel(v.Base, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// debouncer coalesces change notifications per document so a burst of
// editor writes surfaces as a single trailing event.
type debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{pending: make(map[string]struct{}), delay: delay}
}

func (d *debouncer) Enqueue(ev Event, send func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[ev.Path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		paths := d.pending
		d.pending = make(map[string]struct{})
		d.timer = nil
		d.mu.Unlock()

		for path := range paths {
			send(Event{Path: path})
		}
	})
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
