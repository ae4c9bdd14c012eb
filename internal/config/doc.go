// Package config loads and validates tool-level configuration for pypeline.
//
// Configuration lives at ~/.config/pypeline/config.toml and covers defaults
// that are not project-specific: author metadata for scaffolding, the build
// history ledger, and logging. A missing file is not an error; built-in
// defaults apply. Project-level settings belong in the project's
// pyproject.toml instead.
package config
