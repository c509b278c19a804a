package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"webmify/internal/batch"
	"webmify/internal/services"
)

func newDirCommand(app *appContext) *cobra.Command {
	var flags convertFlags
	var output string
	var recursive bool
	var workers int

	cmd := &cobra.Command{
		Use:   "dir <input>",
		Short: "Convert every video in a directory to WebM",
		Long: `Convert every video found in a directory to WebM.

Outputs mirror the input tree under the output directory (default
<input>/webm). An output that is already newer than its source is skipped, so
re-running over a converted tree is a cheap no-op. A single file's failure
never aborts the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}

			if workers < 1 {
				return services.Wrap(services.ErrValidation, "dir", "workers",
					fmt.Sprintf("must be at least 1, got %d", workers), nil)
			}
			if !cmd.Flags().Changed("workers") {
				workers = app.cfg.Convert.Workers
			}

			opts := flags.options(cmd, app)
			if err := opts.Validate(); err != nil {
				return err
			}

			progress := isatty.IsTerminal(os.Stderr.Fd()) && !app.verbose
			orchestrator := batch.New(app.newEncoder(), app.logger, batch.WithProgress(progress))

			start := time.Now()
			stats, err := orchestrator.Run(cmd.Context(), batch.Request{
				InputDir:  args[0],
				OutputDir: output,
				Recursive: recursive,
				Workers:   workers,
				Options:   opts,
			})
			if err != nil {
				return err
			}

			summary := renderTable(
				[]string{"Total", "Succeeded", "Failed", "Elapsed"},
				[][]string{{
					strconv.Itoa(stats.Total()),
					strconv.Itoa(stats.Succeeded()),
					strconv.Itoa(stats.Failed()),
					time.Since(start).Round(time.Millisecond).String(),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), summary)

			// Per-file failures are already recorded in the summary; only
			// orchestrator-level errors change the exit status.
			return nil
		},
	}

	registerConvertFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default: <input>/webm)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Search subdirectories for videos")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Concurrent conversions (clamped to the file count)")
	return cmd
}
