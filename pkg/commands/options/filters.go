package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
)

// FilterOptions collects catalog ids per category.
type FilterOptions struct {
	Countries []string
	Religions []string
	Types     []string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringSliceVar(&o.Countries, "country", nil,
		"Country ids to include, example: --country=us,in.")
	cmd.Flags().StringSliceVar(&o.Religions, "religion", nil,
		"Religion ids to include, example: --religion=hindu.")
	cmd.Flags().StringSliceVar(&o.Types, "type", nil,
		"Event type ids to include, example: --type=national,un.")
}

// Selection is the applied filter set the flags describe.
func (o *FilterOptions) Selection() filter.Selection {
	return filter.Selection{
		Countries:  o.Countries,
		Religions:  o.Religions,
		EventTypes: o.Types,
	}
}

// ViewOptions picks the layout.
type ViewOptions struct {
	View string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions, def navigation.Mode) {
	cmd.Flags().StringVar(&o.View, "view", string(def),
		"View to print: month, week or day.")
	_ = cmd.RegisterFlagCompletionFunc("view", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, 0, 3)
		for _, m := range navigation.Modes() {
			modes = append(modes, string(m))
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
}

// Mode parses the --view flag.
func (o *ViewOptions) Mode() (navigation.Mode, error) {
	return navigation.ParseMode(o.View)
}
