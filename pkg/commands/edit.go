package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/commands/options"
	"tableflip.dev/micropost/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	var (
		id      string
		content string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace an entry's content",
		Example: `
micropost edit mpab12 the corrected text
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires an entry id and new content")
			}
			id = args[0]
			content = strings.Join(args[1:], " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newEngine()
			if err != nil {
				return err
			}
			s := edit.Edit{
				Service: svc,
				ID:      id,
				Content: content,
				ShowID:  io.ShowID,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
