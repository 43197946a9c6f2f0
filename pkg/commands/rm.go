package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove"},
		Short:   "Permanently remove an entry from its document",
		Long: base.Wrap80("Removes the entry's physical encoding from the " +
			"Markdown document. Unlike `micropost status <id> deleted`, this " +
			"is not recoverable."),
		Example: `
micropost rm mpab12
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an entry id")
			}
			id = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newEngine()
			if err != nil {
				return err
			}
			s := remove.Remove{
				Service: svc,
				ID:      id,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
