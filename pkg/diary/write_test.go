package diary

import (
	"testing"

	"tableflip.dev/micropost/pkg/entry"
)

func TestFormatEntrySingleLine(t *testing.T) {
	got := FormatEntry("hi", entry.TypeList, false, "14:00", "mpab12")
	if got != "- 14:00 hi ^mpab12" {
		t.Fatalf("unexpected line: %q", got)
	}

	got = FormatEntry("buy milk", entry.TypeTask, false, "10:00", "mp9f2a")
	if got != "- [ ] 10:00 buy milk ^mp9f2a" {
		t.Fatalf("unexpected task line: %q", got)
	}

	got = FormatEntry("done", entry.TypeTask, true, "11:00", "mpc3d4")
	if got != "- [x] 11:00 done ^mpc3d4" {
		t.Fatalf("unexpected completed task line: %q", got)
	}
}

func TestFormatEntryMultiLine(t *testing.T) {
	got := FormatEntry("line1\nline2", entry.TypeList, false, "09:05", "mpab12")
	want := "- 09:05 line1\n  line2 ^mpab12"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRoundTripThroughParser(t *testing.T) {
	encoded := FormatEntry("line1\nline2", entry.TypeList, false, "09:05", "mpab12")
	content := Append("Posts", encoded)("")

	entries := Parse(content, testCtx())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != "mpab12" || e.Content != "line1\nline2" || e.Type != entry.TypeList || e.TaskCompleted {
		t.Fatalf("round trip drifted: %+v", e)
	}
	if got := e.CreatedAt.String(); got != "2024-01-02T09:05:00+00:00" {
		t.Fatalf("unexpected createdAt: %s", got)
	}
}

func TestAppendCreatesHeadingInEmptyDocument(t *testing.T) {
	got := Append("Posts", "- 14:00 hi ^mpab12")("")
	want := "\n\n# Posts\n- 14:00 hi ^mpab12\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAppendAtSectionEnd(t *testing.T) {
	content := "# Posts\n- 09:00 old ^mpaaaa\n\n# Notes\ntext\n"
	got := Append("Posts", "- 10:00 new ^mpbbbb")(content)
	want := "# Posts\n- 09:00 old ^mpaaaa\n- 10:00 new ^mpbbbb\n\n# Notes\ntext\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAppendSkipsTrailingBlanksAtEOF(t *testing.T) {
	content := "# Posts\n- 09:00 old ^mpaaaa\n\n\n"
	got := Append("Posts", "- 10:00 new ^mpbbbb")(content)
	want := "# Posts\n- 09:00 old ^mpaaaa\n- 10:00 new ^mpbbbb\n\n\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestUpdateReplacesWholeItem(t *testing.T) {
	content := "# Posts\n- 09:05 old\n  tail ^mpab12\n- 10:00 other ^mpcdef\n"
	encoded := FormatEntry("new body", entry.TypeList, false, "09:05", "mpab12")
	got := Update("mpab12", encoded)(content)
	want := "# Posts\n- 09:05 new body ^mpab12\n- 10:00 other ^mpcdef\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestUpdateMissingAnchorIsNoOp(t *testing.T) {
	content := "# Posts\n- 09:05 x ^mpab12\n"
	if got := Update("mpzzzz", "- 09:05 y ^mpzzzz")(content); got != content {
		t.Fatalf("missing anchor must leave content unchanged, got %q", got)
	}
}

func TestRemoveDeletesItem(t *testing.T) {
	content := "# Posts\n- 09:05 gone ^mpab12\n- 10:00 stays ^mpcdef\n"
	got := Remove("mpab12")(content)
	want := "# Posts\n- 10:00 stays ^mpcdef\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestToggleFlipsExactly(t *testing.T) {
	content := "# Posts\n- [ ] 10:00 buy milk ^mp9f2a\n"
	toggled := Toggle("mp9f2a")(content)
	want := "# Posts\n- [x] 10:00 buy milk ^mp9f2a\n"
	if toggled != want {
		t.Fatalf("expected %q, got %q", want, toggled)
	}
	if back := Toggle("mp9f2a")(toggled); back != content {
		t.Fatalf("second toggle must restore the original, got %q", back)
	}
}

func TestToggleUppercaseChecked(t *testing.T) {
	content := "- [X] 10:00 shout ^mp9f2a"
	if got := Toggle("mp9f2a")(content); got != "- [ ] 10:00 shout ^mp9f2a" {
		t.Fatalf("uppercase checkbox not handled: %q", got)
	}
}
