package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/runner/catalog"
)

func addCatalog(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	output := &options.OutputOptions{}
	var search string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "list the countries, religions and event types usable as filters",
		Example: `
worldsync catalog
worldsync catalog --search united
worldsync catalog --country us --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := catalog.Catalog{
				Service:   svc,
				Selection: fo.Selection(),
				Search:    search,
				JSON:      output.JSON,
				Out:       output.Writer(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only list options whose name contains this text.")
	addFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
