package encoding

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"webmify/internal/fileutil"
	"webmify/internal/logging"
	"webmify/internal/media/ffprobe"
	"webmify/internal/services"
	"webmify/internal/textutil"
)

// Prober supplies video metadata for an input file.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.VideoInfo, error)
}

// Encoder converts single video files to WebM via ffmpeg.
type Encoder struct {
	binary string
	prober Prober
	exec   Executor
	logger *slog.Logger
}

// New constructs an encoder. A nil executor runs real commands; a nil logger
// discards output. An empty binary falls back to "ffmpeg".
func New(binary string, prober Prober, exec Executor, logger *slog.Logger) *Encoder {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if exec == nil {
		exec = commandExecutor{}
	}
	return &Encoder{
		binary: binary,
		prober: prober,
		exec:   exec,
		logger: logging.NewComponentLogger(logger, "encoding"),
	}
}

// Result summarizes one successful conversion.
type Result struct {
	OutputPath  string
	Bitrate     int
	InputBytes  int64
	OutputBytes int64
	Video       ffprobe.VideoInfo
}

// SizeRatio returns the output size as a percentage of the input size.
func (r Result) SizeRatio() float64 {
	if r.InputBytes <= 0 {
		return 0
	}
	return float64(r.OutputBytes) / float64(r.InputBytes) * 100
}

// OutputName derives the default output file name for an input path: the
// base name normalized to snake_case with a .webm extension.
func OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return textutil.SnakeCase(stem) + ".webm"
}

// Encode converts inputPath to WebM. When outputPath is empty the output is
// placed next to the input under its normalized name. A non-zero ffmpeg exit
// fails the conversion; any partial output file is left for the caller.
func (e *Encoder) Encode(ctx context.Context, inputPath, outputPath string, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrNotFound, "encoding", "input",
				fmt.Sprintf("%s does not exist", inputPath), nil)
		}
		return Result{}, services.Wrap(services.ErrValidation, "encoding", "input", "inspect", err)
	}

	video, err := e.prober.Probe(ctx, inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("probe %s: %w", filepath.Base(inputPath), err)
	}

	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), OutputName(inputPath))
	}
	if err := fileutil.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "encoding", "output",
			fmt.Sprintf("create directory %s", filepath.Dir(outputPath)), err)
	}

	bitrate := BitrateForQuality(opts.Quality)
	chain, err := BuildFilterChain(opts.Crop, opts.Resize)
	if err != nil {
		return Result{}, err
	}
	args := buildArgs(inputPath, outputPath, bitrate, chain, video, opts)

	logger := e.logger.With(logging.String("file", filepath.Base(inputPath)))
	logger.Info("converting",
		logging.Int("bitrate_kbps", bitrate),
		logging.String("output", filepath.Base(outputPath)),
	)
	if opts.Verbose {
		logger.Info("transcoder command", logging.String("command", e.binary+" "+strings.Join(args, " ")))
	}

	_, stderr, err := e.exec.Run(ctx, e.binary, args)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "encoding", "transcode",
			strings.TrimSpace(stderr), err)
	}
	if opts.Verbose && strings.TrimSpace(stderr) != "" {
		logger.Debug("transcoder diagnostics", logging.String("stderr", strings.TrimSpace(stderr)))
	}

	outputInfo, err := os.Stat(outputPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "encoding", "transcode",
			fmt.Sprintf("ffmpeg succeeded but %s is missing", outputPath), err)
	}

	result := Result{
		OutputPath:  outputPath,
		Bitrate:     bitrate,
		InputBytes:  inputInfo.Size(),
		OutputBytes: outputInfo.Size(),
		Video:       video,
	}
	logger.Info("converted",
		logging.String("output", filepath.Base(outputPath)),
		logging.String("size", humanize.Bytes(uint64(result.OutputBytes))),
		logging.String("of_original", fmt.Sprintf("%.1f%%", result.SizeRatio())),
	)
	return result, nil
}
