package distribution

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dbrown540/pypeline-cli/internal/fileutil"
	"github.com/dbrown540/pypeline-cli/internal/logging"
	"github.com/dbrown540/pypeline-cli/internal/manifest"
	"github.com/dbrown540/pypeline-cli/internal/project"
	"github.com/dbrown540/pypeline-cli/internal/services"
)

// fixedZipTime keeps archives byte-for-byte reproducible (1980-01-01 UTC).
var fixedZipTime = time.Unix(315532800, 0).UTC()

// ArchiveBuilder archives the filtered source tree directly into a
// Snowflake-compatible zip. Every entry path is the filesystem path with the
// project root prefix stripped, using forward slashes regardless of platform;
// that relative-path choice is what puts pyproject.toml at entry depth zero
// instead of nested under a project-name folder.
type ArchiveBuilder struct {
	project *project.Context
	rules   Ruleset
	logger  *slog.Logger
}

// ArchiveOption configures an ArchiveBuilder.
type ArchiveOption func(*ArchiveBuilder)

// WithRuleset overrides the default exclusion ruleset.
func WithRuleset(rules Ruleset) ArchiveOption {
	return func(b *ArchiveBuilder) {
		b.rules = rules
	}
}

// WithArchiveLogger attaches a logger to the builder.
func WithArchiveLogger(logger *slog.Logger) ArchiveOption {
	return func(b *ArchiveBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewArchiveBuilder constructs a direct-archival builder for the project.
func NewArchiveBuilder(proj *project.Context, opts ...ArchiveOption) *ArchiveBuilder {
	b := &ArchiveBuilder{
		project: proj,
		rules:   DefaultRuleset(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces dist/snowflake/<name>-<version>.zip from the project tree.
// The output directory is removed and recreated first, so two successive
// builds never mix artifacts. After writing, the archive is reopened to
// verify the manifest sits at top level; a mismatch is reported as a warning
// rather than failing the build, because it signals a defect in entry-path
// computation, not a recoverable runtime condition.
func (b *ArchiveBuilder) Build(ctx context.Context) (*Report, error) {
	lock, err := acquireLock(b.project)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	doc, err := manifest.Load(b.project.ManifestPath())
	if err != nil {
		return nil, err
	}
	name := doc.Name()
	if name == "" {
		return nil, services.Wrap(services.ErrManifest, "distribution", "archive",
			"project.name missing from "+b.project.ManifestPath(), nil)
	}
	version := doc.Version()

	if err := fileutil.RemoveAndRecreate(b.project.SnowflakeDir()); err != nil {
		return nil, err
	}

	report := &Report{
		BuildID:     uuid.NewString(),
		Strategy:    "archive",
		ProjectName: name,
		Version:     version,
	}
	ctx = services.WithBuildID(ctx, report.BuildID)
	logger := b.logger.With(logging.String(logging.FieldProject, name))

	archiveName := fmt.Sprintf("%s-%s.zip", name, version)
	archivePath := filepath.Join(b.project.SnowflakeDir(), archiveName)

	count, err := b.writeArchive(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	report.FileCount = count

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}
	report.Artifacts = append(report.Artifacts, Artifact{
		Name: archiveName,
		Path: archivePath,
		Size: info.Size(),
		Kind: KindSnowflake,
	})

	verified, err := VerifyManifestAtRoot(archivePath)
	if err != nil {
		return nil, err
	}
	report.VerifiedManifest = verified
	if !verified {
		warning := fmt.Sprintf("%s is missing %s at its top level; the stage upload will be rejected",
			archiveName, project.ManifestFilename)
		report.Warnings = append(report.Warnings, warning)
		logger.WarnContext(ctx, "archive verification failed",
			logging.String(logging.FieldArtifact, archiveName))
	}

	logger.InfoContext(ctx, "archive written",
		logging.String(logging.FieldArtifact, archiveName),
		logging.Int("files", count),
		logging.Int64("size_bytes", info.Size()),
	)
	return report, nil
}

// writeArchive walks the project tree and writes every non-excluded file into
// the zip at archivePath, returning the entry count. Directories are pruned
// when their own name is excluded and are never written as entries.
func (b *ArchiveBuilder) writeArchive(ctx context.Context, archivePath string) (int, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	root := b.project.Root()
	count := 0

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %q: %w", path, err)
		}
		relSlash := filepath.ToSlash(rel)

		if entry.IsDir() {
			if b.rules.SegmentExcluded(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if b.rules.Excludes(relSlash) {
			return nil
		}

		if err := writeZipEntry(zw, relSlash, path); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		zw.Close()
		return 0, fmt.Errorf("archive project tree: %w", walkErr)
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalize archive: %w", err)
	}
	return count, out.Close()
}

func writeZipEntry(zw *zip.Writer, name, srcPath string) error {
	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	header.SetMode(0o644)
	header.Modified = fixedZipTime

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}
