// Package testsupport provides fixtures shared across package tests.
package testsupport

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbrown540/pypeline-cli/internal/project"
)

// NewProject creates a managed project tree in a temp directory and returns
// its resolved context. The manifest declares the given name and version and
// carries the [tool.pypeline] marker.
func NewProject(t *testing.T, name, version string) *project.Context {
	t.Helper()

	root := t.TempDir()
	manifest := fmt.Sprintf(`[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"

[project]
name = %q
version = %q
dependencies = []

[tool.pypeline]
`, name, version)
	WriteFile(t, root, "pyproject.toml", manifest)

	ctx, err := project.Resolve(root)
	if err != nil {
		t.Fatalf("resolve fixture project: %v", err)
	}
	return ctx
}

// WriteFile writes content at rel under root, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ZipEntries returns the entry names of the archive at path, in archive order.
func ZipEntries(t *testing.T, path string) []string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive %s: %v", path, err)
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names
}

// FakeVenv creates a project-local interpreter file so toolchain precondition
// checks pass, returning its path.
func FakeVenv(t *testing.T, ctx *project.Context) string {
	t.Helper()
	python := ctx.VenvPython()
	if err := os.MkdirAll(filepath.Dir(python), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(python, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return python
}
