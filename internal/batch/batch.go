package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"webmify/internal/encoding"
	"webmify/internal/fileutil"
	"webmify/internal/logging"
	"webmify/internal/services"
)

// DefaultOutputDirName is the subdirectory used when no output dir is given.
const DefaultOutputDirName = "webm"

const lockFileName = ".webmify.lock"

// Converter performs one file conversion. Satisfied by *encoding.Encoder.
type Converter interface {
	Encode(ctx context.Context, inputPath, outputPath string, opts encoding.Options) (encoding.Result, error)
}

// Request describes one batch invocation.
type Request struct {
	InputDir  string
	OutputDir string
	Recursive bool
	Workers   int
	Options   encoding.Options
}

// Orchestrator runs batch conversions over a directory tree.
type Orchestrator struct {
	converter Converter
	logger    *slog.Logger
	progress  bool
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithProgress enables the interactive progress bar. Callers should only
// enable it when stderr is a terminal and verbose logging is off.
func WithProgress(enabled bool) Option {
	return func(o *Orchestrator) {
		o.progress = enabled
	}
}

// New constructs an orchestrator. A nil logger discards output.
func New(converter Converter, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		converter: converter,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}


// Run discovers videos under req.InputDir and converts them with a worker
// pool clamped to [1, item count]. Per-file failures are recorded in the
// returned stats; only orchestrator-level problems (missing input dir,
// unreadable tree, conflicting run) are returned as errors.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Stats, error) {
	info, err := os.Stat(req.InputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "batch", "input",
				fmt.Sprintf("directory %s does not exist", req.InputDir), nil)
		}
		return nil, services.Wrap(services.ErrValidation, "batch", "input", "inspect directory", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "batch", "input",
			fmt.Sprintf("%s is not a directory", req.InputDir), nil)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(req.InputDir, DefaultOutputDirName)
	}
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, services.Wrap(services.ErrValidation, "batch", "output", "create directory", err)
	}

	// One batch run per output tree; a second invocation would race the
	// first on skip checks and partial outputs.
	lock := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "batch", "lock", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "batch", "lock",
			fmt.Sprintf("another batch run is already writing to %s", outputDir), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	files, err := Discover(req.InputDir, req.Recursive)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "batch", "discover", "enumerate videos", err)
	}

	logger := o.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	if len(files) == 0 {
		logger.Info("no videos found", logging.String("input", req.InputDir))
		return NewStats(0), nil
	}

	stats := NewStats(len(files))
	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	logger.Info("starting batch conversion",
		logging.Int("videos", len(files)),
		logging.Int("workers", workers),
		logging.String("output", outputDir),
	)

	// Each ffmpeg process gets one internal thread; the pool width alone
	// governs parallelism.
	opts := req.Options
	opts.Threads = 1

	var bar *progressbar.ProgressBar
	if o.progress {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	jobs := make(chan string, len(files))
	for _, path := range files {
		jobs <- path
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				o.process(ctx, logger, path, req.InputDir, outputDir, opts, stats)
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	logger.Info("batch conversion finished",
		logging.Int("total", stats.Total()),
		logging.Int("succeeded", stats.Succeeded()),
		logging.Int("failed", stats.Failed()),
	)
	return stats, nil
}

func (o *Orchestrator) process(ctx context.Context, logger *slog.Logger, path, inputDir, outputDir string, opts encoding.Options, stats *Stats) {
	fileLogger := logger.With(logging.String("file", filepath.Base(path)))

	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		fileLogger.Error("cannot resolve relative path", logging.Error(err))
		stats.Failure()
		return
	}
	outputPath := filepath.Join(outputDir, filepath.Dir(rel), encoding.OutputName(path))

	upToDate, err := fileutil.UpToDate(outputPath, path)
	if err != nil {
		fileLogger.Error("cannot check existing output", logging.Error(err))
		stats.Failure()
		return
	}
	if upToDate {
		fileLogger.Info("skipping, output is up to date", logging.String("output", filepath.Base(outputPath)))
		stats.Success()
		return
	}

	if _, err := o.converter.Encode(ctx, path, outputPath, opts); err != nil {
		fileLogger.Error("conversion failed", logging.Error(err))
		stats.Failure()
		return
	}
	stats.Success()
}
