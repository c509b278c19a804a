package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"webmify/internal/services"
)

// Tools names the external binaries the converter shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Convert holds default conversion parameters applied when the matching flag
// is not set.
type Convert struct {
	Quality int `toml:"quality"`
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Tools   Tools   `toml:"tools"`
	Convert Convert `toml:"convert"`
	Logging Logging `toml:"logging"`
}

// Load reads a TOML config file, fills unset fields with defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "load", fmt.Sprintf("read %s", path), err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "load", fmt.Sprintf("parse %s", path), err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero-valued fields that Unmarshal may have cleared when
// the file names a section but leaves a key empty.
func (c *Config) applyDefaults() {
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	if c.Convert.Workers == 0 {
		c.Convert.Workers = defaultWorkers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
