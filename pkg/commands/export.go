package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	ro := &options.RangeOptions{}
	output := &options.OutputOptions{}
	var path, name string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write filtered events as an iCalendar file",
		Example: `
worldsync export --out holidays.ics
worldsync export --country in --from 2024-1-1 --to 2024-12-31 > india.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return err
			}
			from, to, err := ro.Bounds(nil)
			if err != nil {
				return err
			}
			s := export.Export{
				Service:   svc,
				Selection: fo.Selection(),
				From:      from,
				To:        to,
				Path:      path,
				Name:      name,
				Out:       output.Writer(),
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&path, "out", "o", "", "File to write; defaults to stdout.")
	cmd.Flags().StringVar(&name, "name", "", "Calendar name shown by calendar apps.")
	addFilterArgs(cmd, fo)
	options.AddRangeArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
