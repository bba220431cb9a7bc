package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/runner/legend"
)

func addLegend(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "print the event type colors with counts for a view",
		Example: `
worldsync legend
worldsync legend --view week --country in
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			state, err := viewState(cfg, vo, on)
			if err != nil {
				return output.HandleError(err)
			}
			s := legend.Legend{
				Service:   svc,
				Selection: fo.Selection(),
				State:     state,
				WeekStart: cfg.WeekStart(),
				JSON:      output.JSON,
				Out:       output.Writer(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, vo, "")
	options.AddOnArgs(cmd, on)
	addFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
