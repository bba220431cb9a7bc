package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/printers"
	"tableflip.dev/worldsync/pkg/timeutil"
)

func addUpcoming(topLevel *cobra.Command) {
	var next string
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	ids := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Display upcoming events grouped by type",
		Long: `Upcoming lists the filtered events starting today (or --on) within the
specified window, grouped by event type.

Examples:
  worldsync upcoming
  worldsync upcoming --next 10d
  worldsync upcoming --next 1w --religion islam`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, label, err := timeutil.ParseWindow(next)
			if err != nil {
				return output.HandleError(err)
			}
			since, err := on.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			until := since.AddDays(days - 1)

			_, svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			result, err := svc.Report(cmd.Context(), fo.Selection(), since, until)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(result)
			}
			renderUpcoming(output.Writer(), result, label, ids.ShowID)
			return nil
		},
	}

	cmd.Flags().StringVar(&next, "next", timeutil.DefaultWindow, "window to include (for example 10d, 1w)")
	options.AddOnArgs(cmd, on)
	addFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, ids)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func renderUpcoming(w io.Writer, result app.ReportResult, label string, showID bool) {
	pp := printers.New(w)
	pp.ShowID = showID

	since := result.Since.Format("Mon Jan 2, 2006")
	until := result.Until.Format("Mon Jan 2, 2006")
	_, _ = fmt.Fprintf(pp.Out, "Upcoming · next %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(pp.Out, "  No events found in this window.")
		pp.NewLine()
		return
	}

	for _, section := range result.Sections {
		pp.NewLine()
		pp.TitleWithCount(section.Type.Label(), len(section.Events))
		pp.Events(section.Events...)
	}
}
