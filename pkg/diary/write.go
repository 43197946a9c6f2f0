package diary

import (
	"strings"
	"time"

	"tableflip.dev/micropost/pkg/entry"
)

// FormatEntry encodes content as one diary item: marker plus HH:MM plus
// first content line, two-space-indented continuation lines, and the block
// anchor trailing the last physical line.
func FormatEntry(content string, typ entry.Type, taskCompleted bool, hhmm, blockID string) string {
	prefix := markerList
	if typ == entry.TypeTask {
		prefix = markerTaskOpen
		if taskCompleted {
			prefix = markerTaskDone
		}
	}

	lines := strings.Split(content, "\n")
	if len(lines) == 1 {
		return prefix + hhmm + " " + lines[0] + " ^" + blockID
	}

	out := []string{prefix + hhmm + " " + lines[0]}
	for i, l := range lines[1:] {
		suffix := ""
		if i == len(lines)-2 {
			suffix = " ^" + blockID
		}
		out = append(out, continuationIndent+l+suffix)
	}
	return strings.Join(out, "\n")
}

// HHMM formats the captured time prefix for an entry line.
func HHMM(t time.Time) string {
	return t.Format("15:04")
}

// Append returns a transform that splices an encoded entry at the end of
// the heading's section, creating the heading when the document lacks it.
// All position finding happens inside the transform, against whatever
// content the storage transaction hands it.
func Append(heading, encoded string) func(string) string {
	return func(content string) string {
		content, at := insertionPoint(content, heading)
		lines := strings.Split(content, "\n")
		lines = append(lines[:at], append([]string{encoded}, lines[at:]...)...)
		return strings.Join(lines, "\n")
	}
}

// Update returns a transform replacing the item carrying id with a freshly
// encoded one. When the anchor is gone from the document, the transform
// returns the content unchanged and the edit is dropped.
func Update(blockID, encoded string) func(string) string {
	return func(content string) string {
		lines := strings.Split(content, "\n")
		start, end, ok := locate(lines, blockID)
		if !ok {
			return content
		}
		repl := strings.Split(encoded, "\n")
		lines = append(lines[:start], append(repl, lines[end+1:]...)...)
		return strings.Join(lines, "\n")
	}
}

// Remove returns a transform physically deleting the item carrying id.
func Remove(blockID string) func(string) string {
	return func(content string) string {
		lines := strings.Split(content, "\n")
		start, end, ok := locate(lines, blockID)
		if !ok {
			return content
		}
		lines = append(lines[:start], lines[end+1:]...)
		return strings.Join(lines, "\n")
	}
}

// Toggle returns a transform flipping the task checkbox on the item
// carrying id, touching no other line.
func Toggle(blockID string) func(string) string {
	return func(content string) string {
		lines := strings.Split(content, "\n")
		start, _, ok := locate(lines, blockID)
		if !ok {
			return content
		}
		first := lines[start]
		switch {
		case strings.HasPrefix(first, markerTaskOpen):
			lines[start] = strings.Replace(first, markerTaskOpen, markerTaskDone, 1)
		case taskDoneRe.MatchString(first):
			lines[start] = taskDoneRe.ReplaceAllString(first, markerTaskOpen)
		}
		return strings.Join(lines, "\n")
	}
}

// insertionPoint finds the line index just past the end of the heading's
// section, skipping trailing blank lines. A missing heading is created at
// the end of the document.
func insertionPoint(content, heading string) (string, int) {
	lines := strings.Split(content, "\n")
	level := 0
	headingIdx := -1

	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if headingIdx >= 0 && len(m[1]) <= level {
			at := i
			for at > headingIdx+1 && strings.TrimSpace(lines[at-1]) == "" {
				at--
			}
			return content, at
		}
		if strings.TrimSpace(m[2]) == heading {
			level = len(m[1])
			headingIdx = i
		}
	}

	if headingIdx >= 0 {
		at := len(lines)
		for at > headingIdx+1 && strings.TrimSpace(lines[at-1]) == "" {
			at--
		}
		return content, at
	}

	created := strings.TrimRight(content, " \t\n") + "\n\n# " + heading + "\n"
	return created, len(strings.Split(created, "\n")) - 1
}

// locate finds the line range of the item whose last line carries ^blockID:
// the anchor line, then backward to the nearest marker line.
func locate(lines []string, blockID string) (start, end int, ok bool) {
	ref := "^" + blockID
	for i, line := range lines {
		if !strings.HasSuffix(strings.TrimRight(line, " \t"), ref) {
			continue
		}
		start = i
		for start > 0 && !strings.HasPrefix(lines[start], markerList) {
			start--
		}
		return start, i, true
	}
	return 0, 0, false
}
