package status

import (
	"context"
	"fmt"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/printers"
)

type Status struct {
	Service *app.Service

	ID     string
	Status entry.Status
	ShowID bool
}

func (n *Status) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}

	e, ok := n.Service.Store.Find(n.ID)
	if !ok {
		return fmt.Errorf("no entry with id %q", n.ID)
	}
	if err := n.Service.ChangeStatus(ctx, e, n.Status); err != nil {
		return err
	}

	updated, _ := n.Service.Store.Find(n.ID)
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(updated.FilePath)
	pp.Entries(updated)
	return nil
}
