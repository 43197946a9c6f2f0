// Package diary encodes entries as list items with a trailing block anchor
// inside a named heading section of a per-day Markdown document.
//
// Diary line format:
//
//   - 09:05 single line content ^mpab12
//   - [ ] 10:00 an open task ^mp9f2a
//   - first line
//     continuation, two-space indent ^mpc3d4
//
// The anchor on the last physical line is the entry id. List items without
// one are ordinary document content and are left alone.
package diary

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/micropost/pkg/data"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/id"
)

const (
	markerList         = "- "
	markerTaskOpen     = "- [ ] "
	markerTaskDone     = "- [x] "
	continuationIndent = "  "
)

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	anchorRe    = regexp.MustCompile(`\^(` + id.BlockPrefix + `[a-z0-9]{4})\s*$`)
	timestampRe = regexp.MustCompile(`^(\d{2}):(\d{2})\s+`)
	taskDoneRe  = regexp.MustCompile(`^- \[[xX]\] `)
)

// Context carries everything a parse pass needs besides the text itself.
type Context struct {
	FilePath string
	Heading  string

	// Date is the document's calendar date, when known.
	Date *time.Time

	// Overlay resolves status/updatedAt for diary entries. Nil means every
	// entry is active.
	Overlay *data.Data

	// Now is the wall clock used when no date context exists. Nil means
	// time.Now.
	Now func() time.Time
}

func (c Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Parse decodes the entries under ctx.Heading in content. Items without a
// block anchor are skipped silently; they are not micro-posting entries.
func Parse(content string, ctx Context) []*entry.Entry {
	section, ok := headingSection(strings.Split(content, "\n"), ctx.Heading)
	if !ok {
		return nil
	}

	var entries []*entry.Entry
	for _, item := range scanItems(section) {
		if item.id == "" {
			continue
		}
		text, clock := item.extract(ctx.Date)
		if text == "" {
			continue
		}

		createdAt := entry.Timestamp{Time: clock.Resolve(ctx.now)}
		e := &entry.Entry{
			ID:            item.id,
			Content:       text,
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
			Type:          entry.TypeList,
			TaskCompleted: item.checked,
			Status:        entry.StatusActive,
			Source:        entry.SourceDiary,
			FilePath:      ctx.FilePath,
		}
		if item.task {
			e.Type = entry.TypeTask
		}
		if ctx.Overlay != nil {
			e.Status = ctx.Overlay.Status(item.id)
			if meta, ok := ctx.Overlay.Meta(item.id); ok {
				e.UpdatedAt = meta.UpdatedAt
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// headingSection returns the lines strictly between the heading whose
// trimmed text equals heading and the next heading of equal-or-shallower
// level, or the end of the document.
func headingSection(lines []string, heading string) ([]string, bool) {
	level := 0
	start := -1
	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if start >= 0 && len(m[1]) <= level {
			return lines[start+1 : i], true
		}
		if strings.TrimSpace(m[2]) == heading {
			level = len(m[1])
			start = i
		}
	}
	if start >= 0 {
		return lines[start+1:], true
	}
	return nil, false
}

// rawItem is one contiguous list item as found in the section, before any
// marker or anchor stripping.
type rawItem struct {
	lines   []string
	task    bool
	checked bool
	id      string
}

// scanItems walks the section as a line classification machine: a marker
// line opens an item, indented non-blank lines continue it, anything else
// closes it.
func scanItems(section []string) []rawItem {
	var items []rawItem
	var current *rawItem

	flush := func() {
		if current != nil {
			items = append(items, *current)
			current = nil
		}
	}

	for _, line := range section {
		switch {
		case isMarker(line):
			flush()
			current = &rawItem{
				lines:   []string{line},
				task:    strings.HasPrefix(line, markerTaskOpen) || taskDoneRe.MatchString(line),
				checked: taskDoneRe.MatchString(line),
			}
		case current != nil && strings.HasPrefix(line, continuationIndent) && strings.TrimSpace(line) != "":
			current.lines = append(current.lines, line)
		default:
			flush()
		}
	}
	flush()

	for i := range items {
		last := items[i].lines[len(items[i].lines)-1]
		if m := anchorRe.FindStringSubmatch(strings.TrimRight(last, " \t")); m != nil {
			items[i].id = m[1]
		}
	}
	return items
}

func isMarker(line string) bool {
	return strings.HasPrefix(line, markerTaskOpen) ||
		taskDoneRe.MatchString(line) ||
		strings.HasPrefix(line, markerList)
}

// extract strips marker, optional HH:MM prefix, continuation indent, and
// the trailing anchor, returning the content and the entry's time context.
func (r rawItem) extract(date *time.Time) (string, Clock) {
	first := r.lines[0]
	switch {
	case strings.HasPrefix(first, markerTaskOpen):
		first = first[len(markerTaskOpen):]
	case taskDoneRe.MatchString(first):
		first = taskDoneRe.ReplaceAllString(first, "")
	default:
		first = first[len(markerList):]
	}

	clock := NoClock()
	if date != nil {
		clock = DateClock(*date)
	}
	if m := timestampRe.FindStringSubmatch(first); m != nil {
		if date != nil {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			clock = ExactClock(*date, hour, minute)
		}
		first = timestampRe.ReplaceAllString(first, "")
	}

	lines := []string{first}
	for _, l := range r.lines[1:] {
		lines = append(lines, strings.TrimPrefix(l, continuationIndent))
	}
	last := len(lines) - 1
	lines[last] = strings.TrimRight(anchorRe.ReplaceAllString(lines[last], ""), " \t")

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n"), clock
}
