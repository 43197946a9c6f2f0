package singlefile

import (
	"strings"

	"tableflip.dev/micropost/pkg/entry"
)

// Format encodes one entry as a callout block: header, the five metadata
// lines in fixed order, the bare-marker separator, then the content.
func Format(id string, createdAt, updatedAt entry.Timestamp, typ entry.Type, status entry.Status, content string) string {
	lines := []string{
		"> [!" + CalloutType + "]",
		"> id: " + id,
		"> createdAt: " + createdAt.String(),
		"> updatedAt: " + updatedAt.String(),
		"> type: " + string(typ),
		"> status: " + string(status),
		">",
	}
	for _, l := range strings.Split(content, "\n") {
		lines = append(lines, "> "+l)
	}
	return strings.Join(lines, "\n")
}

// Append returns a transform adding a fully formatted callout after the
// document's existing content, separated by one blank line, with exactly
// one trailing newline.
func Append(callout string) func(string) string {
	return func(content string) string {
		trimmed := strings.TrimRight(content, " \t\n")
		if trimmed == "" {
			return callout + "\n"
		}
		return trimmed + "\n\n" + callout + "\n"
	}
}

// Replace returns a transform swapping the callout carrying id for a
// freshly formatted block. A missing id leaves the content unchanged.
func Replace(id, callout string) func(string) string {
	return func(content string) string {
		lines := strings.Split(content, "\n")
		start, end, ok := locate(lines, id)
		if !ok {
			return content
		}
		repl := strings.Split(callout, "\n")
		lines = append(lines[:start], append(repl, lines[end+1:]...)...)
		return strings.Join(lines, "\n")
	}
}

// Remove returns a transform deleting the callout carrying id, plus one
// immediately following blank line so gaps do not accumulate.
func Remove(id string) func(string) string {
	return func(content string) string {
		lines := strings.Split(content, "\n")
		start, end, ok := locate(lines, id)
		if !ok {
			return content
		}
		cut := end + 1
		if cut < len(lines) && strings.TrimSpace(lines[cut]) == "" {
			cut++
		}
		lines = append(lines[:start], lines[cut:]...)
		return strings.Join(lines, "\n")
	}
}

// locate finds the full line range of the callout whose metadata carries
// `id: <id>`: the matching metadata line, backward to the header, forward
// while lines keep the blockquote marker.
func locate(lines []string, id string) (start, end int, ok bool) {
	idLine := "> id: " + id
	for i, line := range lines {
		if strings.TrimSpace(line) != strings.TrimSpace(idLine) {
			continue
		}

		start = i - 1
		found := false
		for start >= 0 {
			if headerRe.MatchString(strings.TrimSpace(lines[start])) {
				found = true
				break
			}
			if !strings.HasPrefix(lines[start], ">") {
				break
			}
			start--
		}
		if !found {
			continue
		}

		end = i + 1
		for end < len(lines) && strings.HasPrefix(lines[end], ">") {
			end++
		}
		return start, end - 1, true
	}
	return 0, 0, false
}
