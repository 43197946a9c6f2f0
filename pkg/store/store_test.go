package store

import (
	"testing"
	"time"

	"tableflip.dev/micropost/pkg/entry"
)

func at(day, hour int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)}
}

func mk(id, content string, created entry.Timestamp) *entry.Entry {
	return &entry.Entry{
		ID:        id,
		Content:   content,
		CreatedAt: created,
		UpdatedAt: created,
		Type:      entry.TypeList,
		Status:    entry.StatusActive,
		Source:    entry.SourceDiary,
		FilePath:  "daily/2024-01-02.md",
	}
}

func TestFilteredEntriesSortAndViewMode(t *testing.T) {
	s := New()
	archived := mk("mpa111", "archived", at(5, 9))
	archived.Status = entry.StatusArchived
	s.SetEntries([]*entry.Entry{
		mk("mpa222", "older", at(2, 9)),
		archived,
		mk("mpa333", "newer", at(4, 9)),
	})

	got := s.FilteredEntries()
	if len(got) != 2 {
		t.Fatalf("expected 2 active entries, got %d", len(got))
	}
	if got[0].ID != "mpa333" || got[1].ID != "mpa222" {
		t.Fatalf("not sorted createdAt descending: %v, %v", got[0].ID, got[1].ID)
	}

	s.SetViewMode(entry.ViewArchive)
	got = s.FilteredEntries()
	if len(got) != 1 || got[0].ID != "mpa111" {
		t.Fatalf("archive view wrong: %+v", got)
	}
}

func TestFilteredEntriesStableOnTies(t *testing.T) {
	s := New()
	same := at(3, 9)
	s.SetEntries([]*entry.Entry{
		mk("mpa111", "first in", same),
		mk("mpa222", "second in", same),
	})
	got := s.FilteredEntries()
	if got[0].ID != "mpa111" || got[1].ID != "mpa222" {
		t.Fatalf("tie broke input order: %v", got)
	}
}

func TestFilterComposition(t *testing.T) {
	s := New()
	match := mk("mpa111", "abc #x ![pic](a.png)", at(4, 9))
	s.SetEntries([]*entry.Entry{
		match,
		mk("mpa222", "abc #x no image", at(5, 9)),
		mk("mpa333", "abc ![pic](b.png) no tag", at(6, 9)),
		mk("mpa444", "#x ![pic](c.png) no query", at(7, 9)),
	})
	s.SetFilter(entry.FilterState{
		SearchQuery: "ABC",
		Tag:         "#x",
		QuickFilter: entry.FilterWithImage,
	})

	got := s.FilteredEntries()
	if len(got) != 1 || got[0].ID != "mpa111" {
		t.Fatalf("composition wrong: %+v", got)
	}
}

func TestQuickFilters(t *testing.T) {
	s := New()
	s.SetEntries([]*entry.Entry{
		mk("mpa111", "see [[other]]", at(2, 9)),
		mk("mpa222", "visit https://example.com", at(3, 9)),
		mk("mpa333", "plain, no tags", at(4, 9)),
		mk("mpa444", "tagged #t", at(5, 9)),
	})

	cases := []struct {
		filter entry.QuickFilter
		want   []string
	}{
		{entry.FilterWithLink, []string{"mpa111"}},
		{entry.FilterWithHyperlink, []string{"mpa222"}},
		{entry.FilterNoTag, []string{"mpa333", "mpa222", "mpa111"}},
	}
	for _, tc := range cases {
		s.SetFilter(entry.FilterState{QuickFilter: tc.filter})
		got := s.FilteredEntries()
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %+v", tc.filter, tc.want, got)
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("%s: expected %v, got %v at %d", tc.filter, id, got[i].ID, i)
			}
		}
	}
}

func TestHideCompletedTasks(t *testing.T) {
	s := New()
	done := mk("mpa111", "done", at(4, 9))
	done.Type = entry.TypeTask
	done.TaskCompleted = true
	open := mk("mpa222", "open", at(3, 9))
	open.Type = entry.TypeTask
	s.SetEntries([]*entry.Entry{done, open})

	s.SetHideCompletedTasks(true)
	got := s.FilteredEntries()
	if len(got) != 1 || got[0].ID != "mpa222" {
		t.Fatalf("completed task not excluded: %+v", got)
	}
}

func TestTagsFrequency(t *testing.T) {
	s := New()
	archived := mk("mpa444", "#rare but archived", at(5, 9))
	archived.Status = entry.StatusArchived
	s.SetEntries([]*entry.Entry{
		mk("mpa111", "#common #rare", at(2, 9)),
		mk("mpa222", "#common", at(3, 9)),
		mk("mpa333", "#common and #tie", at(4, 9)),
		archived,
	})

	got := s.Tags()
	if len(got) != 3 {
		t.Fatalf("expected 3 tags, got %+v", got)
	}
	if got[0].Tag != "#common" || got[0].Count != 3 {
		t.Fatalf("expected #common first: %+v", got)
	}
	// #rare and #tie both count 1; first encounter order wins.
	if got[1].Tag != "#rare" || got[2].Tag != "#tie" {
		t.Fatalf("tie order wrong: %+v", got)
	}
}

func TestMutationsNotifyOnce(t *testing.T) {
	s := New()
	var entriesEvents, filterEvents int
	s.On(TopicEntries, func() { entriesEvents++ })
	s.On(TopicFilter, func() { filterEvents++ })

	s.SetEntries([]*entry.Entry{mk("mpa111", "x", at(2, 9))})
	s.AddEntry(mk("mpa222", "y", at(3, 9)))
	s.UpdateEntry("mpa111", entry.Patch{})
	s.RemoveEntry("mpa222")
	if entriesEvents != 4 {
		t.Fatalf("expected 4 entries-changed events, got %d", entriesEvents)
	}

	s.SetFilter(entry.FilterState{SearchQuery: "x"})
	if filterEvents != 1 {
		t.Fatalf("expected 1 filter-changed event, got %d", filterEvents)
	}
}

func TestNoOpMutationsDoNotNotify(t *testing.T) {
	s := New()
	var layoutEvents, viewEvents, filterEvents int
	s.On(TopicLayout, func() { layoutEvents++ })
	s.On(TopicViewMode, func() { viewEvents++ })
	s.On(TopicFilter, func() { filterEvents++ })

	s.SetLayout(entry.LayoutList)
	s.SetViewMode(entry.ViewActive)
	s.SetHideCompletedTasks(false)
	if layoutEvents != 0 || viewEvents != 0 || filterEvents != 0 {
		t.Fatalf("no-op mutations must not notify: %d %d %d", layoutEvents, viewEvents, filterEvents)
	}

	s.SetLayout(entry.LayoutChat)
	s.SetViewMode(entry.ViewTrash)
	s.SetHideCompletedTasks(true)
	if layoutEvents != 1 || viewEvents != 1 || filterEvents != 1 {
		t.Fatalf("real mutations must notify once: %d %d %d", layoutEvents, viewEvents, filterEvents)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s := New()
	var a, b int
	offA := s.On(TopicEntries, func() { a++ })
	s.On(TopicEntries, func() { b++ })

	offA()
	offA()
	s.SetEntries(nil)
	if a != 0 || b != 1 {
		t.Fatalf("unsubscribe broken: a=%d b=%d", a, b)
	}
}

func TestAddEntryPrepends(t *testing.T) {
	s := New()
	s.SetEntries([]*entry.Entry{mk("mpa111", "x", at(2, 9))})
	s.AddEntry(mk("mpa222", "y", at(3, 9)))
	if got := s.Entries(); got[0].ID != "mpa222" {
		t.Fatalf("AddEntry must prepend: %+v", got)
	}
}

func TestUpdateEntryPatches(t *testing.T) {
	s := New()
	s.SetEntries([]*entry.Entry{mk("mpa111", "x", at(2, 9))})

	status := entry.StatusDeleted
	s.UpdateEntry("mpa111", entry.Patch{Status: &status})
	e, ok := s.Find("mpa111")
	if !ok || e.Status != entry.StatusDeleted {
		t.Fatalf("patch not applied: %+v", e)
	}
	if e.Content != "x" {
		t.Fatalf("patch touched unrelated field: %+v", e)
	}
}
