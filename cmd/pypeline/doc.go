// Package main hosts the pypeline CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into project
// scaffolding, dependency syncing, distribution builds, and build-ledger
// queries. It centralizes configuration resolution, project-root discovery,
// and structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
