package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
)

func addRemove(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "remove ID...",
		Aliases: []string{"rm"},
		Short:   "delete imported events from the store",
		Example: `
worldsync remove 1f0c3a2e-8d7b-4c55-9a4e-0e6f3b8f2d11
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return eventCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := svc.Remove(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(output.Writer(), "removed", id)
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
