package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	var exportDir string
	var debug bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
worldsync ui
worldsync ui --view week --on 12/25
worldsync ui --country in --religion hindu
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}
			state, err := viewState(cfg, vo, on)
			if err != nil {
				return err
			}
			i := ui.UI{
				Service:   svc,
				Mode:      state.Mode,
				WeekStart: cfg.WeekStart(),
				Start:     state.Current,
				ExportDir: exportDir,
				Selection: fo.Selection(),
				Debug:     debug,
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddViewArgs(cmd, vo, "")
	options.AddOnArgs(cmd, on)
	addFilterArgs(cmd, fo)
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "Directory that receives .ics files saved from the event modal.")
	cmd.Flags().BoolVar(&debug, "debug", false, "Start with the message log open.")

	topLevel.AddCommand(cmd)
}
