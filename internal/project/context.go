package project

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/dbrown540/pypeline-cli/internal/services"
)

// ManifestFilename is the project manifest expected at the root.
const ManifestFilename = "pyproject.toml"

// Context resolves and exposes the project root and well-known paths within it.
// The root is computed once at construction and never mutated.
type Context struct {
	root string
}

// Resolve walks upward from startDir and returns a Context anchored at the
// nearest ancestor (startDir included) whose pyproject.toml carries the
// [tool.pypeline] marker. Ancestors whose manifest is missing or fails to
// parse are skipped, not treated as errors. Reaching the filesystem root
// without a match yields services.ErrNotInProject.
func Resolve(startDir string) (*Context, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory %q: %w", startDir, err)
	}

	current := abs
	for {
		manifestPath := filepath.Join(current, ManifestFilename)
		if info, statErr := os.Stat(manifestPath); statErr == nil && !info.IsDir() {
			if isManagedManifest(manifestPath) {
				return &Context{root: current}, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, services.ErrNotInProject
		}
		current = parent
	}
}

// New accepts dir verbatim as the project root without searching or
// validating. Used during project creation, when the root may not exist on
// disk yet.
func New(dir string) (*Context, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory %q: %w", dir, err)
	}
	return &Context{root: abs}, nil
}

// Root returns the absolute project root directory.
func (c *Context) Root() string { return c.root }

// ManifestPath returns the path to the project's pyproject.toml.
func (c *Context) ManifestPath() string { return filepath.Join(c.root, ManifestFilename) }

// SrcDir returns the source directory under the root.
func (c *Context) SrcDir() string { return filepath.Join(c.root, "src") }

// TestsDir returns the tests directory under the root.
func (c *Context) TestsDir() string { return filepath.Join(c.root, "tests") }

// DistDir returns the standard distributable output directory.
func (c *Context) DistDir() string { return filepath.Join(c.root, "dist") }

// SnowflakeDir returns the stage-upload output directory under dist/.
func (c *Context) SnowflakeDir() string { return filepath.Join(c.root, "dist", "snowflake") }

// DepsFilePath returns the user-maintained dependency side file.
func (c *Context) DepsFilePath() string { return filepath.Join(c.root, "pypeline-deps.txt") }

// LockPath returns the build lock file guarding concurrent invocations.
func (c *Context) LockPath() string { return filepath.Join(c.root, ".pypeline.lock") }

// VenvPython returns the project-local interpreter path. The layout differs
// between Windows (Scripts/python.exe) and everything else (bin/python).
func (c *Context) VenvPython() string {
	venv := filepath.Join(c.root, ".venv")
	if runtime.GOOS == "windows" {
		return filepath.Join(venv, "Scripts", "python.exe")
	}
	return filepath.Join(venv, "bin", "python")
}

// isManagedManifest reports whether the manifest at path parses as TOML and
// contains the [tool.pypeline] ownership marker. Unreadable or malformed
// manifests disqualify the candidate without aborting the walk.
func isManagedManifest(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	tool, ok := raw["tool"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = tool["pypeline"]
	return ok
}
