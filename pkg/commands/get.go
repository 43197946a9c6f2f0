package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/commands/options"
	"tableflip.dev/micropost/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	var days int

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"list", "ls"},
		Short:   "List entries for a view",
		Example: `
micropost get
micropost get --view archive
micropost get --tag release --search parser
micropost get --quick with-image --days 90
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newEngine()
			if err != nil {
				return err
			}
			view, err := fo.ViewMode()
			if err != nil {
				return err
			}
			filter, err := fo.State()
			if err != nil {
				return err
			}

			s := get.Get{
				Service:       svc,
				ShowID:        io.ShowID,
				View:          view,
				Filter:        filter,
				HideCompleted: fo.HideCompleted,
				Days:          days,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, fo)
	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().IntVar(&days, "days", 0,
		"Widen the daily-document window to at least this many days.")

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
