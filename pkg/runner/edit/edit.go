package edit

import (
	"context"
	"fmt"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/printers"
)

type Edit struct {
	Service *app.Service

	ID      string
	Content string
	ShowID  bool
}

func (n *Edit) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}

	e, ok := n.Service.Store.Find(n.ID)
	if !ok {
		return fmt.Errorf("no entry with id %q", n.ID)
	}
	if err := n.Service.EditEntry(ctx, e, n.Content); err != nil {
		return err
	}

	updated, _ := n.Service.Store.Find(n.ID)
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(updated.FilePath)
	pp.Entries(updated)
	return nil
}
