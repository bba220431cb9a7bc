package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "worldsync",
		Short: base.Wrap80("Holidays, religious observances and cultural celebrations from around the world, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addEvent(topLevel)
	addCatalog(topLevel)
	addLegend(topLevel)
	addUpcoming(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addRemove(topLevel)
	addInfo(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
