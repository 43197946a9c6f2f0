package watch

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/printers"
	"tableflip.dev/micropost/pkg/store"
	"tableflip.dev/micropost/pkg/vault"
)

// Watch follows the vault and reprints the active view whenever an
// external edit lands. It blocks until ctx is done.
type Watch struct {
	Service *app.Service
	Vault   *vault.Dir

	ShowID bool
	View   entry.ViewMode
}

func (n *Watch) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}
	n.Service.Store.SetViewMode(n.View)

	events, err := n.Vault.Watch(ctx)
	if err != nil {
		return err
	}

	off := n.Service.Store.On(store.TopicEntries, func() { n.print() })
	defer off()

	n.print()
	n.Service.Run(ctx, events)
	return nil
}

func (n *Watch) print() {
	all := n.Service.Store.FilteredEntries()
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount("Watching", len(all))
	pp.Entries(all...)
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintln(color.Output, "waiting for changes, ctrl-c to stop")
}
