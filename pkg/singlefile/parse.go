// Package singlefile encodes entries as typed callout blocks carrying
// explicit metadata lines, anywhere inside one shared Markdown document.
//
// Block format:
//
//	> [!micro-posting]
//	> id: 3e3c95a4-...
//	> createdAt: 2024-01-02T09:05:00+00:00
//	> updatedAt: 2024-01-02T09:05:00+00:00
//	> type: list
//	> status: active
//	>
//	> content line 1
//	> content line N
//
// The bare-marker line separates metadata from content.
package singlefile

import (
	"regexp"
	"strings"
	"time"

	"tableflip.dev/micropost/pkg/entry"
)

// CalloutType is the fixed callout tag identifying micro-posting blocks.
const CalloutType = "micro-posting"

var headerRe = regexp.MustCompile(`^>\s*\[!` + CalloutType + `\]\s*$`)

// bodyLine returns the text of a callout body line with the blockquote
// marker stripped; ok is false when the line is not part of a callout.
func bodyLine(line string) (string, bool) {
	if line == ">" {
		return "", true
	}
	if strings.HasPrefix(line, "> ") {
		return line[2:], true
	}
	return "", false
}

// Parse scans content for micro-posting callouts. Callouts missing an id
// are invalid and skipped entirely; other missing metadata falls back to
// defaults (now for timestamps, list type, active status).
func Parse(content, filePath string, now func() time.Time) []*entry.Entry {
	if now == nil {
		now = time.Now
	}
	lines := strings.Split(content, "\n")

	var entries []*entry.Entry
	i := 0
	for i < len(lines) {
		if !headerRe.MatchString(lines[i]) {
			i++
			continue
		}
		i++

		meta := map[string]string{}
		separated := false
		for i < len(lines) {
			text, ok := bodyLine(lines[i])
			if !ok {
				break
			}
			if text == "" {
				separated = true
				i++
				break
			}
			if colon := strings.Index(text, ":"); colon > 0 {
				meta[strings.TrimSpace(text[:colon])] = strings.TrimSpace(text[colon+1:])
			}
			i++
		}

		var contentLines []string
		if separated {
			for i < len(lines) {
				text, ok := bodyLine(lines[i])
				if !ok {
					break
				}
				contentLines = append(contentLines, text)
				i++
			}
		}

		id := meta["id"]
		if id == "" {
			continue
		}

		e := &entry.Entry{
			ID:       id,
			Content:  strings.TrimRight(strings.Join(contentLines, "\n"), " \t\n"),
			Type:     entry.TypeList,
			Status:   entry.StatusActive,
			Source:   entry.SourceSingleFile,
			FilePath: filePath,
		}
		e.CreatedAt = parseStamp(meta["createdAt"], now)
		e.UpdatedAt = parseStamp(meta["updatedAt"], now)
		if t := entry.Type(meta["type"]); t == entry.TypeTask || t == entry.TypeList {
			e.Type = t
		}
		switch s := entry.Status(meta["status"]); s {
		case entry.StatusArchived, entry.StatusDeleted:
			e.Status = s
		}
		entries = append(entries, e)
	}
	return entries
}

func parseStamp(raw string, now func() time.Time) entry.Timestamp {
	if raw != "" {
		if t, err := entry.ParseTime(raw); err == nil {
			return entry.Timestamp{Time: t}
		}
	}
	return entry.Timestamp{Time: now()}
}
