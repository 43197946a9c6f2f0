package singlefile

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/micropost/pkg/entry"
)

func fixedNow() time.Time {
	return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
}

func ts(day, hour int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)}
}

func TestRoundTrip(t *testing.T) {
	callout := Format("abc-123", ts(2, 9), ts(3, 10), entry.TypeTask, entry.StatusArchived, "line1\nline2")
	content := Append(callout)("")

	entries := Parse(content, "micropost.md", fixedNow)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != "abc-123" || e.Content != "line1\nline2" {
		t.Fatalf("round trip drifted: %+v", e)
	}
	if !e.CreatedAt.Equal(ts(2, 9).Time) || !e.UpdatedAt.Equal(ts(3, 10).Time) {
		t.Fatalf("timestamps drifted: %+v", e)
	}
	if e.Type != entry.TypeTask || e.Status != entry.StatusArchived {
		t.Fatalf("metadata drifted: %+v", e)
	}
	if e.Source != entry.SourceSingleFile || e.TaskCompleted {
		t.Fatalf("unexpected source/completion: %+v", e)
	}
}

func TestParseSkipsCalloutWithoutID(t *testing.T) {
	content := strings.Join([]string{
		"> [!micro-posting]",
		"> type: list",
		">",
		"> orphan body",
		"",
		"> [!micro-posting]",
		"> id: keep-me",
		">",
		"> kept",
		"",
	}, "\n")

	entries := Parse(content, "micropost.md", fixedNow)
	if len(entries) != 1 || entries[0].ID != "keep-me" {
		t.Fatalf("expected only the callout with an id: %+v", entries)
	}
}

func TestParseMetadataDefaults(t *testing.T) {
	content := "> [!micro-posting]\n> id: bare\n"
	entries := Parse(content, "micropost.md", fixedNow)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Content != "" {
		t.Fatalf("no separator means empty content, got %q", e.Content)
	}
	if e.Type != entry.TypeList || e.Status != entry.StatusActive {
		t.Fatalf("defaults not applied: %+v", e)
	}
	if !e.CreatedAt.Equal(fixedNow()) || !e.UpdatedAt.Equal(fixedNow()) {
		t.Fatalf("timestamp defaults not applied: %+v", e)
	}
}

func TestParseIgnoresUnrecognizedStatus(t *testing.T) {
	content := "> [!micro-posting]\n> id: x\n> status: bogus\n> custom: kept-but-unsurfaced\n"
	entries := Parse(content, "micropost.md", fixedNow)
	if len(entries) != 1 || entries[0].Status != entry.StatusActive {
		t.Fatalf("bogus status should fall back to active: %+v", entries)
	}
}

func TestParseIgnoresOtherCallouts(t *testing.T) {
	content := "> [!note]\n> id: not-ours\n\nplain text\n"
	if got := Parse(content, "micropost.md", fixedNow); got != nil {
		t.Fatalf("expected no entries, got %+v", got)
	}
}

func TestAppendSpacing(t *testing.T) {
	callout := Format("a", ts(2, 9), ts(2, 9), entry.TypeList, entry.StatusActive, "hi")

	if got := Append(callout)(""); got != callout+"\n" {
		t.Fatalf("empty file append wrong: %q", got)
	}

	got := Append(callout)("existing text\n\n\n")
	if got != "existing text\n\n"+callout+"\n" {
		t.Fatalf("append should normalize to one blank line separator: %q", got)
	}
}

func TestReplacePreservesNeighbors(t *testing.T) {
	first := Format("one", ts(2, 9), ts(2, 9), entry.TypeList, entry.StatusActive, "first")
	second := Format("two", ts(3, 9), ts(3, 9), entry.TypeList, entry.StatusActive, "second")
	content := Append(second)(Append(first)(""))

	updated := Format("one", ts(2, 9), ts(4, 9), entry.TypeList, entry.StatusDeleted, "first")
	got := Replace("one", updated)(content)

	entries := Parse(got, "micropost.md", fixedNow)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Status != entry.StatusDeleted || !entries[0].UpdatedAt.Equal(ts(4, 9).Time) {
		t.Fatalf("replacement not applied: %+v", entries[0])
	}
	if entries[1].Content != "second" {
		t.Fatalf("neighbor disturbed: %+v", entries[1])
	}
}

func TestReplaceMissingIDIsNoOp(t *testing.T) {
	content := "just text\n"
	if got := Replace("ghost", "> [!micro-posting]\n> id: ghost\n")(content); got != content {
		t.Fatalf("missing id must leave content unchanged: %q", got)
	}
}

func TestRemoveCleansFollowingBlank(t *testing.T) {
	first := Format("one", ts(2, 9), ts(2, 9), entry.TypeList, entry.StatusActive, "first")
	second := Format("two", ts(3, 9), ts(3, 9), entry.TypeList, entry.StatusActive, "second")
	content := Append(second)(Append(first)(""))

	got := Remove("one")(content)
	if strings.HasPrefix(got, "\n") {
		t.Fatalf("leading gap left behind: %q", got)
	}
	entries := Parse(got, "micropost.md", fixedNow)
	if len(entries) != 1 || entries[0].ID != "two" {
		t.Fatalf("expected only the second entry: %+v", entries)
	}
}
