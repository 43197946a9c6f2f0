// Package app orchestrates the engine: loading and reconciling entries
// from every document, routing mutations to the owning codec, and keeping
// the in-memory store mirrored with committed state.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"tableflip.dev/micropost/pkg/daily"
	"tableflip.dev/micropost/pkg/data"
	"tableflip.dev/micropost/pkg/diary"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/id"
	"tableflip.dev/micropost/pkg/logging"
	"tableflip.dev/micropost/pkg/singlefile"
	"tableflip.dev/micropost/pkg/store"
	"tableflip.dev/micropost/pkg/vault"
)

// InitialLoadDays is the per-day document window one load pass covers.
const InitialLoadDays = 30

// ErrDailyNotesDisabled reports a diary mutation attempted while the daily
// document feature is unavailable. No write is attempted.
var ErrDailyNotesDisabled = errors.New(
	"app: daily documents are not available; configure them or switch to single-file mode")

// Service wires the codecs, the vault, the overlay blob, and the store.
type Service struct {
	Vault vault.Vault
	Daily *daily.Notes
	Store *store.Store
	Data  *data.Data
	Blob  *data.Store

	// IDs mints entry ids. Nil uses a generator that avoids ids already
	// loaded in the store.
	IDs *id.Generator

	Log logging.Logger
	Now func() time.Time

	// writing counts in-flight service-initiated write transactions so the
	// watcher can tell its own writes from external edits.
	writing    atomic.Int32
	loadedDays int
}

func (s *Service) log() logging.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logging.Default()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) gen() *id.Generator {
	if s.IDs != nil {
		return s.IDs
	}
	return &id.Generator{Taken: func(candidate string) bool {
		_, taken := s.Store.Find(candidate)
		return taken
	}}
}

func (s *Service) beginWrite() { s.writing.Add(1) }
func (s *Service) endWrite()   { s.writing.Add(-1) }

// Writing reports whether a service-initiated write is in flight.
func (s *Service) Writing() bool { return s.writing.Load() > 0 }

// LoadEntries reads the recent daily-document window plus the single file,
// reconciles the results, and replaces the store's entry set. Failures are
// isolated per document and never abort the load.
func (s *Service) LoadEntries(ctx context.Context) error {
	var entries []*entry.Entry

	if s.Daily.Enabled() {
		for _, path := range s.Daily.RecentFiles(InitialLoadDays) {
			entries = append(entries, s.parseDaily(ctx, path)...)
		}
	} else if s.Data.Settings.DefaultSource == entry.SourceDiary {
		s.log().Warn(ctx, "daily documents unavailable; diary entries not loaded")
	}

	entries = append(entries, s.parseSingleFile(ctx)...)

	s.Store.SetEntries(s.dedup(ctx, entries))
	s.loadedDays = InitialLoadDays
	return nil
}

// LoadMoreEntries extends the daily-document window by another
// InitialLoadDays and merges entries from documents not yet represented.
// It reports whether anything new was loaded.
func (s *Service) LoadMoreEntries(ctx context.Context) (bool, error) {
	if !s.Daily.Enabled() {
		return false, nil
	}

	nextDays := s.loadedDays + InitialLoadDays

	loaded := map[string]bool{}
	for _, e := range s.Store.Entries() {
		if e.Source == entry.SourceDiary {
			loaded[e.FilePath] = true
		}
	}

	var fresh []*entry.Entry
	for _, path := range s.Daily.RecentFiles(nextDays) {
		if loaded[path] {
			continue
		}
		fresh = append(fresh, s.parseDaily(ctx, path)...)
	}
	s.loadedDays = nextDays

	if len(fresh) == 0 {
		return false, nil
	}
	s.Store.SetEntries(s.dedup(ctx, append(s.Store.Entries(), fresh...)))
	return true, nil
}

// Refresh recomputes the entries contributed by one modified document and
// splices them into the reconciled set, leaving other documents' entries
// untouched.
func (s *Service) Refresh(ctx context.Context, path string) {
	if path == s.Data.Settings.SingleFilePath {
		var kept []*entry.Entry
		for _, e := range s.Store.Entries() {
			if e.Source == entry.SourceDiary {
				kept = append(kept, e)
			}
		}
		s.Store.SetEntries(s.dedup(ctx, append(kept, s.parseSingleFile(ctx)...)))
		return
	}

	if !s.Daily.Enabled() {
		return
	}
	if _, ok := s.Daily.DateOf(path); !ok {
		return
	}
	var kept []*entry.Entry
	for _, e := range s.Store.Entries() {
		if e.FilePath != path {
			kept = append(kept, e)
		}
	}
	s.Store.SetEntries(s.dedup(ctx, append(kept, s.parseDaily(ctx, path)...)))
}

// Run drains the vault's modification stream until ctx is done, refreshing
// the affected document on every external edit. Events raised by the
// service's own writes are suppressed.
func (s *Service) Run(ctx context.Context, events <-chan vault.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if s.Writing() {
				continue
			}
			s.Refresh(ctx, ev.Path)
		}
	}
}

// SaveEntry appends a new entry to the default source and mirrors it into
// the store.
func (s *Service) SaveEntry(ctx context.Context, content string, typ entry.Type) (*entry.Entry, error) {
	s.beginWrite()
	defer s.endWrite()

	if s.Data.Settings.DefaultSource == entry.SourceDiary {
		return s.appendDiary(ctx, content, typ)
	}
	return s.appendSingleFile(ctx, content, typ)
}

func (s *Service) appendDiary(ctx context.Context, content string, typ entry.Type) (*entry.Entry, error) {
	if !s.Daily.Enabled() {
		return nil, ErrDailyNotesDisabled
	}

	now := s.now()
	path, err := s.Daily.Resolve(now)
	if err != nil {
		return nil, err
	}
	blockID, err := s.gen().BlockID()
	if err != nil {
		return nil, err
	}

	encoded := diary.FormatEntry(content, typ, false, diary.HHMM(now), blockID)
	heading := s.Data.Settings.DiaryHeading
	if err := s.Vault.AtomicUpdate(path, diary.Append(heading, encoded)); err != nil {
		return nil, fmt.Errorf("app: append diary entry: %w", err)
	}

	e := entry.New(blockID, content, typ, entry.SourceDiary, path, entry.Timestamp{Time: now})
	s.Store.AddEntry(e)
	return e, nil
}

func (s *Service) appendSingleFile(ctx context.Context, content string, typ entry.Type) (*entry.Entry, error) {
	path := s.Data.Settings.SingleFilePath
	if !s.Vault.Exists(path) {
		if err := s.Vault.Create(path, ""); err != nil && !errors.Is(err, vault.ErrExists) {
			return nil, fmt.Errorf("app: create single file: %w", err)
		}
	}

	uid, err := s.gen().UUID()
	if err != nil {
		return nil, err
	}
	now := entry.Timestamp{Time: s.now()}

	callout := singlefile.Format(uid, now, now, typ, entry.StatusActive, content)
	if err := s.Vault.AtomicUpdate(path, singlefile.Append(callout)); err != nil {
		return nil, fmt.Errorf("app: append single-file entry: %w", err)
	}

	e := entry.New(uid, content, typ, entry.SourceSingleFile, path, now)
	s.Store.AddEntry(e)
	return e, nil
}

// EditEntry rewrites an entry's content in its owning document, then
// mirrors the change. A failed write leaves the store untouched.
func (s *Service) EditEntry(ctx context.Context, e *entry.Entry, newContent string) error {
	s.beginWrite()
	defer s.endWrite()

	now := entry.Timestamp{Time: s.now()}

	switch e.Source {
	case entry.SourceDiary:
		encoded := diary.FormatEntry(newContent, e.Type, e.TaskCompleted, diary.HHMM(e.CreatedAt.Time), e.ID)
		if err := s.Vault.AtomicUpdate(e.FilePath, diary.Update(e.ID, encoded)); err != nil {
			return fmt.Errorf("app: edit entry: %w", err)
		}
	default:
		callout := singlefile.Format(e.ID, e.CreatedAt, now, e.Type, e.Status, newContent)
		if err := s.Vault.AtomicUpdate(e.FilePath, singlefile.Replace(e.ID, callout)); err != nil {
			return fmt.Errorf("app: edit entry: %w", err)
		}
	}

	s.Store.UpdateEntry(e.ID, entry.Patch{Content: &newContent, UpdatedAt: &now})
	s.Store.SetEditing(nil)
	return nil
}

// ChangeStatus moves an entry between active, archived, and deleted. Diary
// entries keep status in the overlay blob; single-file entries keep it
// inline.
func (s *Service) ChangeStatus(ctx context.Context, e *entry.Entry, status entry.Status) error {
	s.beginWrite()
	defer s.endWrite()

	now := entry.Timestamp{Time: s.now()}

	switch e.Source {
	case entry.SourceDiary:
		prev, hadPrev := s.Data.Meta(e.ID)
		s.Data.SetStatus(e.ID, status, now)
		if err := s.Blob.Save(s.Data); err != nil {
			if hadPrev {
				s.Data.Entries[e.ID] = prev
			} else {
				s.Data.Forget(e.ID)
			}
			return fmt.Errorf("app: persist status overlay: %w", err)
		}
	default:
		callout := singlefile.Format(e.ID, e.CreatedAt, now, e.Type, status, e.Content)
		if err := s.Vault.AtomicUpdate(e.FilePath, singlefile.Replace(e.ID, callout)); err != nil {
			return fmt.Errorf("app: change status: %w", err)
		}
	}

	st := status
	s.Store.UpdateEntry(e.ID, entry.Patch{Status: &st, UpdatedAt: &now})
	return nil
}

// ToggleTask flips a task's checkbox. Only the diary encoding tracks
// completion physically; single-file toggles are in-memory only.
func (s *Service) ToggleTask(ctx context.Context, e *entry.Entry) error {
	s.beginWrite()
	defer s.endWrite()

	if e.Source == entry.SourceDiary {
		if err := s.Vault.AtomicUpdate(e.FilePath, diary.Toggle(e.ID)); err != nil {
			return fmt.Errorf("app: toggle task: %w", err)
		}
	}

	now := entry.Timestamp{Time: s.now()}
	flipped := !e.TaskCompleted
	s.Store.UpdateEntry(e.ID, entry.Patch{TaskCompleted: &flipped, UpdatedAt: &now})
	return nil
}

// DeleteEntryPermanently removes an entry's physical encoding. Unlike
// setting status to deleted, this is not recoverable.
func (s *Service) DeleteEntryPermanently(ctx context.Context, e *entry.Entry) error {
	s.beginWrite()
	defer s.endWrite()

	switch e.Source {
	case entry.SourceDiary:
		if err := s.Vault.AtomicUpdate(e.FilePath, diary.Remove(e.ID)); err != nil {
			return fmt.Errorf("app: remove entry: %w", err)
		}
		s.Data.Forget(e.ID)
		if err := s.Blob.Save(s.Data); err != nil {
			return fmt.Errorf("app: prune status overlay: %w", err)
		}
	default:
		if err := s.Vault.AtomicUpdate(e.FilePath, singlefile.Remove(e.ID)); err != nil {
			return fmt.Errorf("app: remove entry: %w", err)
		}
	}

	s.Store.RemoveEntry(e.ID)
	return nil
}

func (s *Service) parseDaily(ctx context.Context, path string) []*entry.Entry {
	content, err := s.Vault.Read(path)
	if err != nil {
		s.log().Warn(ctx, "failed to read daily document", "path", path, "err", err)
		return nil
	}
	dctx := diary.Context{
		FilePath: path,
		Heading:  s.Data.Settings.DiaryHeading,
		Overlay:  s.Data,
		Now:      s.now,
	}
	if d, ok := s.Daily.DateOf(path); ok {
		dctx.Date = &d
	}
	return diary.Parse(content, dctx)
}

func (s *Service) parseSingleFile(ctx context.Context) []*entry.Entry {
	path := s.Data.Settings.SingleFilePath
	if !s.Vault.Exists(path) {
		return nil
	}
	content, err := s.Vault.Read(path)
	if err != nil {
		s.log().Warn(ctx, "failed to read single file", "path", path, "err", err)
		return nil
	}
	return singlefile.Parse(content, path, s.now)
}

// dedup keeps the first entry per id and drops later ones with a
// diagnostic, guarding against hand-edited duplicate anchors.
func (s *Service) dedup(ctx context.Context, entries []*entry.Entry) []*entry.Entry {
	seen := map[string]bool{}
	out := entries[:0]
	for _, e := range entries {
		if seen[e.ID] {
			s.log().Warn(ctx, "duplicate entry id dropped", "id", e.ID, "path", e.FilePath)
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
