package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotInProject indicates root resolution walked to the filesystem root
	// without finding a pyproject.toml carrying the [tool.pypeline] marker.
	ErrNotInProject = errors.New("not in a pypeline project (no pyproject.toml with [tool.pypeline] found)")

	// ErrToolchainMissing indicates the project-local interpreter does not exist.
	ErrToolchainMissing = errors.New("virtual environment not found")

	// ErrBuildFailed indicates the delegated build tool exited non-zero.
	ErrBuildFailed = errors.New("build failed")

	// ErrNoArtifacts indicates a successful build produced nothing packageable.
	ErrNoArtifacts = errors.New("no distributable artifacts produced")

	// ErrLocked indicates another invocation holds the project build lock.
	ErrLocked = errors.New("project is locked by another build")

	// ErrManifest indicates the manifest document could not be parsed or merged.
	ErrManifest = errors.New("manifest error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrManifest
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
