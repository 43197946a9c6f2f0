package add

import (
	"context"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/printers"
)

type Add struct {
	Service *app.Service

	Content string
	Type    entry.Type
	ShowID  bool
}

func (n *Add) Do(ctx context.Context) error {
	e, err := n.Service.SaveEntry(ctx, n.Content, n.Type)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(e.FilePath)
	pp.Entries(e)
	return nil
}
