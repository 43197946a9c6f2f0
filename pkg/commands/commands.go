package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "micropost",
		Short: base.Wrap80("Micro-posting inside your Markdown vault."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addEdit(topLevel)
	addStatus(topLevel)
	addToggle(topLevel)
	addRemove(topLevel)
	addTags(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}
