package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webmify/internal/deps"
	"webmify/internal/services"
)

func newDepsCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the required external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Defaults(app.cfg.Tools.FFmpeg, app.cfg.Tools.FFprobe))

			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					missing++
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Command", "Status", "Detail"},
				rows,
				nil,
			))

			if missing > 0 {
				return services.Wrap(services.ErrConfiguration, "deps", "check",
					fmt.Sprintf("%d required tool(s) missing", missing), nil)
			}
			return nil
		},
	}
}
