package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/micropost/pkg/store"
)

// Tags renders the tag frequency table for the current view.
func Tags(tags []store.TagCount) {
	b := color.New(color.Bold)

	if len(tags) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Tag"), b.Sprint("Entries"))
	for _, t := range tags {
		tbl.AddRow(t.Tag, t.Count)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
