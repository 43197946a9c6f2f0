// Package store holds the reconciled in-memory entry set and the derived
// view state: filter, layout, view mode, the entry open for editing, and
// the completed-task toggle. It is a read-through, write-through cache;
// callers commit to physical storage first and mirror the result here.
package store

import (
	"sort"
	"strings"

	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/markdown"
)

// Topic names one change notification stream. Events carry no payload;
// subscribers re-query current state.
type Topic string

const (
	TopicEntries  Topic = "entries-changed"
	TopicFilter   Topic = "filter-changed"
	TopicLayout   Topic = "layout-changed"
	TopicViewMode Topic = "view-mode-changed"
	TopicEditing  Topic = "editing-changed"
)

// TagCount is one row of the tag frequency aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// Store is not safe for concurrent use; the engine runs single-threaded
// cooperative scheduling and mutates the store only between I/O calls.
type Store struct {
	entries            []*entry.Entry
	filter             entry.FilterState
	layout             entry.LayoutMode
	viewMode           entry.ViewMode
	editing            *entry.Entry
	hideCompletedTasks bool

	nextToken int
	listeners map[Topic]map[int]func()
}

func New() *Store {
	return &Store{
		layout:    entry.LayoutList,
		viewMode:  entry.ViewActive,
		listeners: map[Topic]map[int]func(){},
	}
}

// On subscribes fn to a topic. The returned func unsubscribes; calling it
// more than once is harmless.
func (s *Store) On(topic Topic, fn func()) (off func()) {
	if s.listeners[topic] == nil {
		s.listeners[topic] = map[int]func(){}
	}
	token := s.nextToken
	s.nextToken++
	s.listeners[topic][token] = fn
	return func() {
		delete(s.listeners[topic], token)
	}
}

func (s *Store) emit(topic Topic) {
	for _, fn := range s.listeners[topic] {
		fn()
	}
}

// Entries returns a copy of the unfiltered entry list.
func (s *Store) Entries() []*entry.Entry {
	out := make([]*entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// FilteredEntries applies, in order: view-mode status, case-insensitive
// substring search, exact tag membership, the quick filter, and the
// completed-task exclusion; then sorts by createdAt descending with input
// order breaking ties.
func (s *Store) FilteredEntries() []*entry.Entry {
	status := s.viewMode.Status()
	query := strings.ToLower(s.filter.SearchQuery)

	var out []*entry.Entry
	for _, e := range s.entries {
		if e.Status != status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Content), query) {
			continue
		}
		if s.filter.Tag != "" && !containsTag(e.Content, s.filter.Tag) {
			continue
		}
		if s.filter.QuickFilter != "" && !matchesQuickFilter(e, s.filter.QuickFilter) {
			continue
		}
		if s.hideCompletedTasks && e.Type == entry.TypeTask && e.TaskCompleted {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}

// Tags aggregates tag frequency across entries in the current view mode,
// most frequent first; ties keep first-encounter order.
func (s *Store) Tags() []TagCount {
	status := s.viewMode.Status()
	counts := map[string]int{}
	var order []string
	for _, e := range s.entries {
		if e.Status != status {
			continue
		}
		for _, tag := range markdown.ExtractTags(e.Content) {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func (s *Store) Filter() entry.FilterState { return s.filter }
func (s *Store) Layout() entry.LayoutMode  { return s.layout }
func (s *Store) ViewMode() entry.ViewMode  { return s.viewMode }
func (s *Store) Editing() *entry.Entry     { return s.editing }
func (s *Store) HideCompletedTasks() bool  { return s.hideCompletedTasks }

// Find returns the entry with the given id, if loaded.
func (s *Store) Find(id string) (*entry.Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// SetEntries replaces the whole entry set.
func (s *Store) SetEntries(entries []*entry.Entry) {
	s.entries = entries
	s.emit(TopicEntries)
}

// AddEntry prepends a freshly committed entry.
func (s *Store) AddEntry(e *entry.Entry) {
	s.entries = append([]*entry.Entry{e}, s.entries...)
	s.emit(TopicEntries)
}

// UpdateEntry merge-patches the entry with the given id. Unknown ids are
// ignored without a notification.
func (s *Store) UpdateEntry(id string, patch entry.Patch) {
	for _, e := range s.entries {
		if e.ID == id {
			patch.Apply(e)
			s.emit(TopicEntries)
			return
		}
	}
}

// RemoveEntry drops the entry with the given id.
func (s *Store) RemoveEntry(id string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.emit(TopicEntries)
}

// SetFilter replaces the filter state.
func (s *Store) SetFilter(f entry.FilterState) {
	s.filter = f
	s.emit(TopicFilter)
}

// SetLayout switches the layout mode; a no-op change does not notify.
func (s *Store) SetLayout(m entry.LayoutMode) {
	if s.layout == m {
		return
	}
	s.layout = m
	s.emit(TopicLayout)
}

// SetViewMode switches the status perspective; a no-op change does not
// notify.
func (s *Store) SetViewMode(m entry.ViewMode) {
	if s.viewMode == m {
		return
	}
	s.viewMode = m
	s.emit(TopicViewMode)
}

// SetEditing marks the entry currently open for editing (nil for none).
func (s *Store) SetEditing(e *entry.Entry) {
	s.editing = e
	s.emit(TopicEditing)
}

// SetHideCompletedTasks toggles completed-task exclusion; a no-op change
// does not notify.
func (s *Store) SetHideCompletedTasks(hide bool) {
	if s.hideCompletedTasks == hide {
		return
	}
	s.hideCompletedTasks = hide
	s.emit(TopicFilter)
}

func containsTag(content, tag string) bool {
	for _, t := range markdown.ExtractTags(content) {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesQuickFilter(e *entry.Entry, f entry.QuickFilter) bool {
	switch f {
	case entry.FilterWithLink:
		return markdown.HasInternalLink(e.Content)
	case entry.FilterNoTag:
		return len(markdown.ExtractTags(e.Content)) == 0
	case entry.FilterWithHyperlink:
		return markdown.HasExternalLink(e.Content)
	case entry.FilterWithImage:
		return markdown.HasImage(e.Content)
	default:
		return true
	}
}
