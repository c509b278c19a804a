package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newFileCommand(app *appContext) *cobra.Command {
	var flags convertFlags
	var output string
	var threads int

	cmd := &cobra.Command{
		Use:   "file <input>",
		Short: "Convert a single video file to WebM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}

			opts := flags.options(cmd, app)
			opts.Threads = threads
			if err := opts.Validate(); err != nil {
				return err
			}

			start := time.Now()
			result, err := app.newEncoder().Encode(cmd.Context(), args[0], output, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s in %s (%s, %.1f%% of original)\n",
				filepath.Base(result.OutputPath),
				time.Since(start).Round(time.Millisecond),
				humanize.Bytes(uint64(result.OutputBytes)),
				result.SizeRatio(),
			)
			return nil
		},
	}

	registerConvertFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: <input dir>/<normalized name>.webm)")
	cmd.Flags().IntVar(&threads, "threads", 0, "Transcoder thread count hint (0 lets ffmpeg decide)")
	return cmd
}
