// Package project resolves the pypeline project root and exposes the
// well-known paths beneath it.
//
// A directory is a project root when its immediate pyproject.toml parses as
// TOML and contains a [tool.pypeline] section. Resolution walks upward from a
// starting directory and selects the nearest qualifying ancestor; it never
// guesses, never falls back to a default, and fails with a distinct error when
// no ancestor qualifies.
package project
