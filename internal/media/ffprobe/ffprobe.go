package ffprobe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"webmify/internal/services"
)

// VideoInfo describes the probed properties of a video file.
type VideoInfo struct {
	Width    int
	Height   int
	Duration float64
	HasAudio bool
}

// Client wraps ffprobe invocations.
type Client struct {
	binary string
	exec   Executor
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// New constructs an ffprobe client. An empty binary falls back to "ffprobe".
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Probe inspects path and returns its video geometry, duration, and audio
// presence. A duration that ffprobe cannot report is returned as 0 rather
// than failing the probe; everything else is fatal.
func (c *Client) Probe(ctx context.Context, path string) (VideoInfo, error) {
	if strings.TrimSpace(path) == "" {
		return VideoInfo{}, services.Wrap(services.ErrValidation, "probe", "inspect", "empty path", nil)
	}

	geometry, stderr, err := c.exec.Run(ctx, c.binary, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,duration",
		"-of", "csv=p=0",
		path,
	})
	if err != nil {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "probe", "geometry", strings.TrimSpace(stderr), err)
	}

	info, err := parseGeometry(geometry)
	if err != nil {
		return VideoInfo{}, err
	}

	audio, stderr, err := c.exec.Run(ctx, c.binary, []string{
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		path,
	})
	if err != nil {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "probe", "audio", strings.TrimSpace(stderr), err)
	}
	info.HasAudio = strings.TrimSpace(audio) != ""

	return info, nil
}

func parseGeometry(output string) (VideoInfo, error) {
	line := strings.TrimSpace(output)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}

	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "probe", "geometry",
			fmt.Sprintf("unexpected ffprobe output %q", line), nil)
	}

	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "probe", "geometry",
			fmt.Sprintf("invalid width %q", parts[0]), err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "probe", "geometry",
			fmt.Sprintf("invalid height %q", parts[1]), err)
	}
	if width <= 0 || height <= 0 {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "probe", "geometry",
			fmt.Sprintf("non-positive dimensions %dx%d", width, height), nil)
	}

	info := VideoInfo{Width: width, Height: height}

	// Duration is informational downstream; an unparseable value (N/A for
	// some containers) falls back to 0 instead of failing the probe.
	if duration, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err == nil && duration >= 0 {
		info.Duration = duration
	}

	return info, nil
}
