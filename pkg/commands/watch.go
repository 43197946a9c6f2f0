package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/commands/options"
	"tableflip.dev/micropost/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the vault and reprint on external edits",
		Example: `
micropost watch
micropost watch --view archive
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, v, err := newEngine()
			if err != nil {
				return err
			}
			view, err := fo.ViewMode()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := watch.Watch{
				Service: svc,
				Vault:   v,
				ShowID:  io.ShowID,
				View:    view,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
