package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"webmify/internal/services"
)

// Options carries the conversion parameters shared read-only by every worker
// in a batch run.
type Options struct {
	// Quality is a 0-100 score; higher means better fidelity and larger
	// output.
	Quality int
	// Resize is an optional WIDTHxHEIGHT bounding box.
	Resize string
	// Crop is an optional X:Y:WIDTH:HEIGHT region in source pixels.
	Crop string
	// Threads hints ffmpeg's internal parallelism; 0 leaves it to ffmpeg.
	Threads int
	// Verbose surfaces the constructed command line and ffmpeg diagnostics.
	Verbose bool
}

// Validate checks ranges and formats before any subprocess is spawned.
func (o Options) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return services.Wrap(services.ErrValidation, "options", "quality",
			fmt.Sprintf("must be between 0 and 100, got %d", o.Quality), nil)
	}
	if o.Resize != "" {
		if _, _, err := parseResize(o.Resize); err != nil {
			return err
		}
	}
	if o.Crop != "" {
		if _, err := parseCrop(o.Crop); err != nil {
			return err
		}
	}
	if o.Threads < 0 {
		return services.Wrap(services.ErrValidation, "options", "threads",
			fmt.Sprintf("must not be negative, got %d", o.Threads), nil)
	}
	return nil
}

func parseResize(value string) (width, height int, err error) {
	parts := strings.Split(value, "x")
	if len(parts) != 2 {
		return 0, 0, services.Wrap(services.ErrValidation, "options", "resize",
			fmt.Sprintf("expected WIDTHxHEIGHT, got %q", value), nil)
	}
	width, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err == nil {
		height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, services.Wrap(services.ErrValidation, "options", "resize",
			fmt.Sprintf("expected positive WIDTHxHEIGHT, got %q", value), nil)
	}
	return width, height, nil
}

type cropRegion struct {
	x, y, width, height int
}

func parseCrop(value string) (cropRegion, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 4 {
		return cropRegion{}, services.Wrap(services.ErrValidation, "options", "crop",
			fmt.Sprintf("expected X:Y:WIDTH:HEIGHT, got %q", value), nil)
	}
	fields := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return cropRegion{}, services.Wrap(services.ErrValidation, "options", "crop",
				fmt.Sprintf("expected integer fields, got %q", value), err)
		}
		fields[i] = n
	}
	region := cropRegion{x: fields[0], y: fields[1], width: fields[2], height: fields[3]}
	if region.x < 0 || region.y < 0 || region.width <= 0 || region.height <= 0 {
		return cropRegion{}, services.Wrap(services.ErrValidation, "options", "crop",
			fmt.Sprintf("expected non-negative offsets and positive size, got %q", value), nil)
	}
	return region, nil
}
