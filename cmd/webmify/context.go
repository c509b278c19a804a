package main

import (
	"log/slog"

	"webmify/internal/config"
	"webmify/internal/logging"
)

// appContext carries persistent-flag state and lazily built shared
// dependencies across subcommands.
type appContext struct {
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// ensure loads configuration and builds the logger once. Flag values win over
// config file values, which win over compiled defaults; --verbose forces
// debug-level logging.
func (a *appContext) ensure() error {
	if a.cfg == nil {
		if a.configPath != "" {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
		} else {
			cfg := config.Default()
			a.cfg = &cfg
		}
	}

	if a.logger == nil {
		level := a.cfg.Logging.Level
		if a.logLevel != "" {
			level = a.logLevel
		}
		if a.verbose {
			level = "debug"
		}
		format := a.cfg.Logging.Format
		if a.logFormat != "" {
			format = a.logFormat
		}

		logger, err := logging.New(logging.Options{Level: level, Format: format})
		if err != nil {
			return err
		}
		a.logger = logger
	}
	return nil
}
