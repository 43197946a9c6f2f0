package get

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/printers"
)

type Get struct {
	Service *app.Service

	ShowID        bool
	View          entry.ViewMode
	Filter        entry.FilterState
	HideCompleted bool

	// Days widens the daily-document window beyond the initial load.
	Days int
}

func (n *Get) Do(ctx context.Context) error {
	if err := n.Service.LoadEntries(ctx); err != nil {
		return err
	}
	for days := app.InitialLoadDays; days < n.Days; days += app.InitialLoadDays {
		if _, err := n.Service.LoadMoreEntries(ctx); err != nil {
			return err
		}
	}

	st := n.Service.Store
	st.SetViewMode(n.View)
	st.SetFilter(n.Filter)
	st.SetHideCompletedTasks(n.HideCompleted)

	all := st.FilteredEntries()

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount(title(n.View), len(all))
	pp.Entries(all...)
	return nil
}

func title(v entry.ViewMode) string {
	s := string(v)
	if s == "" {
		return "Active"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
