package toggle

import (
	"context"
	"fmt"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/printers"
)

type Toggle struct {
	Service *app.Service

	ID     string
	ShowID bool
}

func (n *Toggle) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}

	e, ok := n.Service.Store.Find(n.ID)
	if !ok {
		return fmt.Errorf("no entry with id %q", n.ID)
	}
	if e.Type != entry.TypeTask {
		return fmt.Errorf("entry %q is not a task", n.ID)
	}
	if err := n.Service.ToggleTask(ctx, e); err != nil {
		return err
	}

	updated, _ := n.Service.Store.Find(n.ID)
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(updated.FilePath)
	pp.Entries(updated)
	return nil
}
