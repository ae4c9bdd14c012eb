package distribution

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dbrown540/pypeline-cli/internal/fileutil"
	"github.com/dbrown540/pypeline-cli/internal/logging"
	"github.com/dbrown540/pypeline-cli/internal/manifest"
	"github.com/dbrown540/pypeline-cli/internal/project"
	"github.com/dbrown540/pypeline-cli/internal/services"
	"github.com/dbrown540/pypeline-cli/internal/services/pybuild"
)

// WheelBuilder delegates to the project-local build frontend and repackages
// the wheels it produces as Snowflake-compatible zips. The rename from .whl
// to .zip is valid without recompression because a wheel is a zip whose
// internal layout already satisfies the stage requirement.
type WheelBuilder struct {
	project        *project.Context
	client         pybuild.Client
	pythonOverride string
	logger         *slog.Logger
}

// WheelOption configures a WheelBuilder.
type WheelOption func(*WheelBuilder)

// WithClient injects a build frontend client. When unset, a pybuild.CLI
// around the resolved interpreter is used.
func WithClient(client pybuild.Client) WheelOption {
	return func(b *WheelBuilder) {
		b.client = client
	}
}

// WithPythonOverride bypasses the project-local venv interpreter lookup.
func WithPythonOverride(path string) WheelOption {
	return func(b *WheelBuilder) {
		b.pythonOverride = path
	}
}

// WithWheelLogger attaches a logger to the builder.
func WithWheelLogger(logger *slog.Logger) WheelOption {
	return func(b *WheelBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewWheelBuilder constructs a repackaging builder for the project.
func NewWheelBuilder(proj *project.Context, opts ...WheelOption) *WheelBuilder {
	b := &WheelBuilder{project: proj, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the external build step and repackages its output.
//
// Failure modes stay distinct so the user can tell them apart: a missing
// interpreter (environment precondition), a non-zero build exit (broken
// build, the tool's own output is already on screen), and a successful build
// that produced no wheels (misconfigured output location).
func (b *WheelBuilder) Build(ctx context.Context) (*Report, error) {
	interpreter, err := pybuild.ResolveInterpreter(b.project.VenvPython(), b.pythonOverride)
	if err != nil {
		return nil, err
	}

	lock, err := acquireLock(b.project)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	doc, err := manifest.Load(b.project.ManifestPath())
	if err != nil {
		return nil, err
	}

	report := &Report{
		BuildID:     uuid.NewString(),
		Strategy:    "wheel",
		ProjectName: doc.Name(),
		Version:     doc.Version(),
	}
	ctx = services.WithBuildID(ctx, report.BuildID)
	logger := b.logger.With(logging.String(logging.FieldProject, doc.Name()))

	if err := fileutil.RemoveAndRecreate(b.project.DistDir()); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(b.project.SnowflakeDir(), 0o755); err != nil {
		return nil, err
	}

	client := b.client
	if client == nil {
		client = pybuild.NewCLI(interpreter)
	}
	logger.InfoContext(ctx, "running build frontend", logging.String("interpreter", interpreter))
	if err := client.Build(ctx, b.project.Root()); err != nil {
		return nil, err
	}

	wheels, err := filepath.Glob(filepath.Join(b.project.DistDir(), "*.whl"))
	if err != nil {
		return nil, err
	}
	if len(wheels) == 0 {
		return nil, services.Wrap(services.ErrNoArtifacts, "distribution", "wheel",
			"build succeeded but produced no wheel files in "+b.project.DistDir(), nil)
	}

	for _, wheel := range wheels {
		zipName := strings.TrimSuffix(filepath.Base(wheel), ".whl") + ".zip"
		zipPath := filepath.Join(b.project.SnowflakeDir(), zipName)
		if err := fileutil.CopyFileVerified(wheel, zipPath); err != nil {
			return nil, services.Wrap(services.ErrBuildFailed, "distribution", "repackage", zipName, err)
		}
		logger.InfoContext(ctx, "repackaged wheel", logging.String(logging.FieldArtifact, zipName))
	}

	if err := b.collectArtifacts(report); err != nil {
		return nil, err
	}
	// Wheels carry pyproject metadata at the layout the stage expects; the
	// rename-only repackaging cannot disturb it.
	report.VerifiedManifest = true
	return report, nil
}

// collectArtifacts lists everything produced under dist/ and dist/snowflake/
// with sizes, in a stable order for reporting.
func (b *WheelBuilder) collectArtifacts(report *Report) error {
	globs := []struct {
		pattern string
		kind    ArtifactKind
	}{
		{filepath.Join(b.project.DistDir(), "*.whl"), KindWheel},
		{filepath.Join(b.project.DistDir(), "*.tar.gz"), KindSdist},
		{filepath.Join(b.project.SnowflakeDir(), "*.zip"), KindSnowflake},
	}
	for _, g := range globs {
		matches, err := filepath.Glob(g.pattern)
		if err != nil {
			return err
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return err
			}
			report.Artifacts = append(report.Artifacts, Artifact{
				Name: filepath.Base(match),
				Path: match,
				Size: info.Size(),
				Kind: g.kind,
			})
		}
	}
	return nil
}
