package remove

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/micropost/pkg/app"
)

type Remove struct {
	Service *app.Service

	ID string
}

func (n *Remove) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}

	e, ok := n.Service.Store.Find(n.ID)
	if !ok {
		return fmt.Errorf("no entry with id %q", n.ID)
	}
	if err := n.Service.DeleteEntryPermanently(ctx, e); err != nil {
		return err
	}

	f := color.New(color.Faint)
	_, _ = f.Fprintf(color.Output, "removed %s from %s\n", e.ID, e.FilePath)
	return nil
}
