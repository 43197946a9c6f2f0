package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/commands/options"
	"tableflip.dev/micropost/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	var content string

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"post"},
		Short:   "Add an entry",
		Example: `
micropost add shipped the new parser #release
micropost add --task remember to water the plants
micropost add --source single-file a long-form aside
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires entry content")
			}
			content = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newEngine()
			if err != nil {
				return err
			}
			if src, ok, err := eo.EntrySource(); err != nil {
				return err
			} else if ok {
				svc.Data.Settings.DefaultSource = src
			}

			s := add.Add{
				Service: svc,
				Content: content,
				Type:    eo.Type(),
				ShowID:  io.ShowID,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTypeArgs(cmd, eo)
	options.AddSourceArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
