package tags

import (
	"context"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/printers"
)

type Tags struct {
	Service *app.Service

	View entry.ViewMode
	Days int
}

func (n *Tags) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}
	for days := app.InitialLoadDays; days < n.Days; days += app.InitialLoadDays {
		if _, err := n.Service.LoadMoreEntries(ctx); err != nil {
			return err
		}
	}

	n.Service.Store.SetViewMode(n.View)
	printers.Tags(n.Service.Store.Tags())
	return nil
}
