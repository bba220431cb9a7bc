package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "print a month, week or day of events",
		Example: `
worldsync show
worldsync show --view week --on 2024-11-1
worldsync show --view day --on 12/25 --religion christian
worldsync show --country us,ca --type national --json
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
			s := show.Show{
				Service:   svc,
				Selection: fo.Selection(),
				State:     state,
				WeekStart: cfg.WeekStart(),
				Today:     event.Today(on.Now),
				ShowID:    io.ShowID,
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
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
