package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/micropost/pkg/entry"
)

type PrettyPrint struct {
	ShowID bool
}

// Wide enough for a v4 UUID, the longest id form.
var spacing = strings.Repeat(" ", 38)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	ts := color.New(color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Print(e.ID)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(e.ID)))
		}
		_, _ = ts.Printf("%s ", e.CreatedAt.Format("2006-01-02 15:04"))

		body := color.New()
		switch {
		case e.Status == entry.StatusDeleted:
			body = color.New(color.CrossedOut, color.Faint)
		case e.Status == entry.StatusArchived:
			body = color.New(color.Faint)
		case e.Type == entry.TypeTask && e.TaskCompleted:
			body = color.New(color.Faint)
		}

		lines := strings.Split(e.Content, "\n")
		_, _ = body.Printf("%s %s\n", glyphFor(e), lines[0])
		for _, line := range lines[1:] {
			if pp.ShowID {
				_, _ = body.Print(spacing)
			}
			// Continuation lines align under the first line's text.
			_, _ = body.Printf("%s%s\n", strings.Repeat(" ", 19), line)
		}
	}
	fmt.Println("")
}

func glyphFor(e *entry.Entry) string {
	if e.Type == entry.TypeTask {
		if e.TaskCompleted {
			return "☑"
		}
		return "☐"
	}
	return "•"
}
