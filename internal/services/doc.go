// Package services defines shared utilities consumed by the CLI commands and
// external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp build IDs and command names for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     diagnostics consistent across commands (missing toolchain vs failed
//     build vs empty output stay distinguishable for the user).
//
// Use these helpers when wiring new command logic so error handling and
// observability stay uniform across the tool.
package services
