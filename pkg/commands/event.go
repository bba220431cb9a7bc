package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/runner/details"
)

func addEvent(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "event ID",
		Short: "print the details of one event",
		Long: `Print an event with its description, cultural significance and
regional variations. Use "worldsync show --show-id" to find ids.`,
		Example: `
worldsync event 3
worldsync event diwali --json
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return eventCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := details.Details{
				Service: svc,
				ID:      args[0],
				JSON:    output.JSON,
				Out:     output.Writer(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
