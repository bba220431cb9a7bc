package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/web"
)

func addServe(topLevel *cobra.Command) {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve calendar views, events and iCalendar feeds over HTTP",
		Long: `Serve exposes:

  GET /health
  GET /api/events?view=month&on=2024-11-01&country=us,in&religion=&type=
  GET /api/events/{id}      (append .ics for a single event calendar)
  GET /api/catalog?search=
  GET /api/legend?view=&on=
  GET /calendar.ics?country=&religion=&type=`,
		Example: `
worldsync serve
worldsync serve --listen :9090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}
			addr := listen
			if addr == "" {
				addr = cfg.Listen()
			}
			s := web.NewServer(svc, web.Options{WeekStart: cfg.WeekStart()})
			return s.ListenAndServe(cmd.Context(), addr, func(a net.Addr) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "WorldSync HTTP server listening on http://%s\n", a)
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on; defaults to the configured listen address.")

	topLevel.AddCommand(cmd)
}
