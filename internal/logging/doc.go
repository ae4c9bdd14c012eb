// Package logging builds slog loggers for the CLI.
//
// Two output formats exist: a compact console format for interactive use and
// JSON for machine consumption. Attr helpers and shared field keys keep log
// output uniform across commands.
package logging
