// Package logging constructs the application slog logger and provides
// attribute helper constructors so call sites stay terse and consistent.
package logging
