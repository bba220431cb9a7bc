package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	output := &options.OutputOptions{}
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "load events from a yaml, json or ics file into the store",
		Long: `Import stores every event of FILE, replacing stored events with the same
id. The format follows the extension (.yaml, .yml, .json, .ics) unless
--format is given. Use - to read from stdin.`,
		Example: `
worldsync import holidays.yaml
worldsync import ~/Downloads/observances.ics
cat events.json | worldsync import - --format json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return err
			}
			s := importer.Import{
				Service: svc,
				Path:    args[0],
				Format:  format,
				In:      cmd.InOrStdin(),
				Out:     output.Writer(),
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: yaml, json or ics.")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json", "ics"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
