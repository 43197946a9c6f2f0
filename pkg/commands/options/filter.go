package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/micropost/pkg/entry"
)

// FilterOptions captures the view scope and the composable filters a read
// command applies.
type FilterOptions struct {
	View          string
	Search        string
	Tag           string
	Quick         string
	HideCompleted bool
}

func AddViewArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.View, "view", "v", string(entry.ViewActive),
		"View to read: active, archive, or trash.")
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Case-insensitive substring to match entry content.")
	cmd.Flags().StringVar(&o.Tag, "tag", "",
		"Only entries carrying this tag (leading # optional).")
	cmd.Flags().StringVarP(&o.Quick, "quick", "q", "",
		"Quick filter: with-link, no-tag, with-hyperlink, or with-image.")
	cmd.Flags().BoolVar(&o.HideCompleted, "hide-completed", false,
		"Hide completed tasks.")
}

func (o *FilterOptions) ViewMode() (entry.ViewMode, error) {
	switch o.View {
	case "", string(entry.ViewActive):
		return entry.ViewActive, nil
	case string(entry.ViewArchive):
		return entry.ViewArchive, nil
	case string(entry.ViewTrash):
		return entry.ViewTrash, nil
	}
	return "", fmt.Errorf("unknown view %q, expected active, archive, or trash", o.View)
}

func (o *FilterOptions) State() (entry.FilterState, error) {
	f := entry.FilterState{
		SearchQuery: o.Search,
		Tag:         o.Tag,
	}
	if f.Tag != "" && f.Tag[0] != '#' {
		f.Tag = "#" + f.Tag
	}
	switch o.Quick {
	case "":
	case string(entry.FilterWithLink):
		f.QuickFilter = entry.FilterWithLink
	case string(entry.FilterNoTag):
		f.QuickFilter = entry.FilterNoTag
	case string(entry.FilterWithHyperlink):
		f.QuickFilter = entry.FilterWithHyperlink
	case string(entry.FilterWithImage):
		f.QuickFilter = entry.FilterWithImage
	default:
		return f, fmt.Errorf("unknown quick filter %q", o.Quick)
	}
	return f, nil
}
