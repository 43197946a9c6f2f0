package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/commands/options"
	"tableflip.dev/micropost/pkg/runner/tags"
)

func addTags(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}

	var days int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tag frequencies for a view",
		Example: `
micropost tags
micropost tags --view archive
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
			s := tags.Tags{
				Service: svc,
				View:    view,
				Days:    days,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, fo)
	cmd.Flags().IntVar(&days, "days", 0,
		"Widen the daily-document window to at least this many days.")

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
