package commands

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

const installPath = "tableflip.dev/worldsync/cmd/worldsync@latest"

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the worldsync cli.",
		Example: `
worldsync upgrade
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ex := exec.CommandContext(cmd.Context(), "go", "install", installPath)
			var stderr bytes.Buffer
			ex.Stderr = &stderr
			if err := ex.Run(); err != nil {
				return fmt.Errorf("%s: %w\n%s", ex.String(), err, stderr.String())
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), ex.String())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
