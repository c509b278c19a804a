// Package config loads and validates the optional TOML configuration file.
//
// Configuration is only consulted when the user passes --config explicitly;
// the converter reads no ambient files or environment variables. Flags always
// win over file values, which win over compiled defaults.
package config
