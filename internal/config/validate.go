package config

import (
	"fmt"
	"strings"

	"webmify/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "tools.ffmpeg must be set", nil)
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "tools.ffprobe must be set", nil)
	}
	if c.Convert.Quality < 0 || c.Convert.Quality > 100 {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			fmt.Sprintf("convert.quality must be between 0 and 100, got %d", c.Convert.Quality), nil)
	}
	if c.Convert.Workers < 1 {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			fmt.Sprintf("convert.workers must be at least 1, got %d", c.Convert.Workers), nil)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format), nil)
	}
	return nil
}
