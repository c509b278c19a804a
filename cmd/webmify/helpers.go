package main

import (
	"github.com/spf13/cobra"

	"webmify/internal/encoding"
	"webmify/internal/media/ffprobe"
)

// convertFlags are the conversion parameters shared by the file and dir
// subcommands.
type convertFlags struct {
	quality int
	resize  string
	crop    string
}

func registerConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", 30, "Video quality 0-100, higher is better")
	cmd.Flags().StringVar(&flags.resize, "resize", "", "Fit output within WIDTHxHEIGHT (e.g. 640x480)")
	cmd.Flags().StringVar(&flags.crop, "crop", "", "Crop X:Y:WIDTH:HEIGHT in source pixels")
}

// options resolves the effective conversion options: an explicitly set
// --quality wins over the config file default.
func (f convertFlags) options(cmd *cobra.Command, app *appContext) encoding.Options {
	quality := f.quality
	if !cmd.Flags().Changed("quality") {
		quality = app.cfg.Convert.Quality
	}
	return encoding.Options{
		Quality: quality,
		Resize:  f.resize,
		Crop:    f.crop,
		Verbose: app.verbose,
	}
}

func (a *appContext) newEncoder() *encoding.Encoder {
	prober := ffprobe.New(a.cfg.Tools.FFprobe)
	return encoding.New(a.cfg.Tools.FFmpeg, prober, nil, a.logger)
}
