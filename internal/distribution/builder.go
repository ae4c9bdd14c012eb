package distribution

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"

	"github.com/dbrown540/pypeline-cli/internal/project"
	"github.com/dbrown540/pypeline-cli/internal/services"
)

// Builder produces distribution artifacts for a resolved project root. The
// two implementations are genuinely distinct strategies with different
// correctness contracts, not variants of one algorithm: WheelBuilder
// repackages externally built wheels, ArchiveBuilder archives the source tree
// directly.
type Builder interface {
	Build(ctx context.Context) (*Report, error)
}

// ArtifactKind classifies a produced artifact in the build report.
type ArtifactKind string

const (
	KindWheel     ArtifactKind = "wheel"
	KindSdist     ArtifactKind = "sdist"
	KindSnowflake ArtifactKind = "snowflake"
)

// Artifact describes one produced distribution file.
type Artifact struct {
	Name string
	Path string
	Size int64
	Kind ArtifactKind
}

// Report summarizes a completed build.
type Report struct {
	BuildID          string
	Strategy         string
	ProjectName      string
	Version          string
	Artifacts        []Artifact
	FileCount        int
	VerifiedManifest bool
	Warnings         []string
}

// TotalSize returns the combined size of all artifacts in the report.
func (r *Report) TotalSize() int64 {
	var total int64
	for _, a := range r.Artifacts {
		total += a.Size
	}
	return total
}

// acquireLock takes the project build lock without blocking. A second
// invocation racing the first gets services.ErrLocked instead of observing a
// partially regenerated output directory.
func acquireLock(proj *project.Context) (*flock.Flock, error) {
	lock := flock.New(proj.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "distribution", "lock", proj.LockPath(), nil)
	}
	return lock, nil
}
