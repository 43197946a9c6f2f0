package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/micropost/pkg/commands/options"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	var (
		id string
		st entry.Status
	)

	cmd := &cobra.Command{
		Use:       "status",
		Short:     "Move an entry between active, archived, and deleted",
		ValidArgs: []string{"active", "archived", "deleted"},
		Example: `
micropost status mpab12 archived
micropost status mpab12 active
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an entry id and a status")
			}
			id = args[0]
			switch args[1] {
			case string(entry.StatusActive):
				st = entry.StatusActive
			case string(entry.StatusArchived):
				st = entry.StatusArchived
			case string(entry.StatusDeleted):
				st = entry.StatusDeleted
			default:
				return fmt.Errorf("unknown status %q", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newEngine()
			if err != nil {
				return err
			}
			s := status.Status{
				Service: svc,
				ID:      id,
				Status:  st,
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
