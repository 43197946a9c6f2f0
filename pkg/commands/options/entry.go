package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/micropost/pkg/entry"
)

// EntryOptions captures the shape of a new or edited entry.
type EntryOptions struct {
	Task   bool
	Source string
}

func AddTypeArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().BoolVarP(&o.Task, "task", "t", false,
		"Record the entry as a task instead of a list item.")
}

func AddSourceArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVar(&o.Source, "source", "",
		"Override the default source (diary or single-file).")
}

func (o *EntryOptions) Type() entry.Type {
	if o.Task {
		return entry.TypeTask
	}
	return entry.TypeList
}

// EntrySource reports the source override, if any.
func (o *EntryOptions) EntrySource() (entry.Source, bool, error) {
	switch o.Source {
	case "":
		return "", false, nil
	case string(entry.SourceDiary):
		return entry.SourceDiary, true, nil
	case string(entry.SourceSingleFile):
		return entry.SourceSingleFile, true, nil
	}
	return "", false, fmt.Errorf("unknown source %q, expected diary or single-file", o.Source)
}
