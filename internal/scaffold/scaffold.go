package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dbrown540/pypeline-cli/internal/project"
)

// Options carries the validated metadata for a new project.
type Options struct {
	Name        string
	AuthorName  string
	AuthorEmail string
	Description string
	License     string
}

// Validate checks all options at once and returns the first problem found.
func (o *Options) Validate() error {
	if err := ValidateName(o.Name); err != nil {
		return err
	}
	if err := ValidateEmail(o.AuthorEmail); err != nil {
		return err
	}
	canonical, err := ValidateLicense(o.License)
	if err != nil {
		return err
	}
	o.License = canonical
	return nil
}

type pyprojectAuthor struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

type pyprojectFile struct {
	BuildSystem struct {
		Requires     []string `toml:"requires"`
		BuildBackend string   `toml:"build-backend"`
	} `toml:"build-system"`
	Project struct {
		Name           string            `toml:"name"`
		Description    string            `toml:"description"`
		Authors        []pyprojectAuthor `toml:"authors"`
		License        string            `toml:"license"`
		RequiresPython string            `toml:"requires-python"`
		Dynamic        []string          `toml:"dynamic"`
		Dependencies   []string          `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Pypeline struct{} `toml:"pypeline"`
		Hatch    struct {
			Version struct {
				Source string `toml:"source"`
			} `toml:"version"`
		} `toml:"hatch"`
	} `toml:"tool"`
}

// Create materializes a new project tree at the context root: manifest with
// the ownership marker, source and test packages, the dependency side file,
// .gitignore, and README. The root must not already contain a manifest.
func Create(ctx *project.Context, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(ctx.ManifestPath()); err == nil {
		return fmt.Errorf("project already exists at %s", ctx.Root())
	}

	dirs := []string{
		filepath.Join(ctx.SrcDir(), opts.Name),
		ctx.TestsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %q: %w", dir, err)
		}
	}

	files := map[string]string{
		ctx.ManifestPath():    renderPyproject(opts),
		ctx.DepsFilePath():    renderDepsFile(),
		filepath.Join(ctx.SrcDir(), opts.Name, "__init__.py"): "",
		filepath.Join(ctx.TestsDir(), "__init__.py"):          "",
		filepath.Join(ctx.Root(), ".gitignore"):               gitignoreTemplate,
		filepath.Join(ctx.Root(), "README.md"):                renderReadme(opts),
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}
	return nil
}

func renderPyproject(opts Options) string {
	var doc pyprojectFile
	doc.BuildSystem.Requires = []string{"hatchling", "hatch-vcs"}
	doc.BuildSystem.BuildBackend = "hatchling.build"
	doc.Project.Name = opts.Name
	doc.Project.Description = opts.Description
	doc.Project.Authors = []pyprojectAuthor{{Name: opts.AuthorName, Email: opts.AuthorEmail}}
	doc.Project.License = opts.License
	doc.Project.RequiresPython = ">=3.11"
	doc.Project.Dynamic = []string{"version"}
	doc.Project.Dependencies = []string{}
	doc.Tool.Hatch.Version.Source = "vcs"

	encoded, err := toml.Marshal(doc)
	if err != nil {
		// Marshaling a fixed struct shape cannot fail at runtime.
		panic(err)
	}
	return string(encoded)
}

func renderDepsFile() string {
	var b strings.Builder
	b.WriteString("# One dependency specifier per line. Sync into pyproject.toml\n")
	b.WriteString("# with `pypeline sync-deps`.\n")
	for _, dep := range DefaultDependencies {
		b.WriteString(dep)
		b.WriteByte('\n')
	}
	return b.String()
}

// Title derives a human heading from the package name: underscores become
// spaces, words get title-cased.
func Title(name string) string {
	words := strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.English).String(words)
}

func renderReadme(opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title(opts.Name))
	if opts.Description != "" {
		b.WriteString(opts.Description)
		b.WriteString("\n\n")
	}
	b.WriteString("Managed by pypeline. Common commands:\n\n")
	b.WriteString("```\npypeline sync-deps   # merge pypeline-deps.txt into pyproject.toml\n")
	b.WriteString("pypeline build       # wheel + sdist + Snowflake zips under dist/\n")
	b.WriteString("pypeline package     # zip the source tree directly\n```\n")
	return b.String()
}

const gitignoreTemplate = `__pycache__/
*.py[cod]
.venv/
dist/
build/
*.egg-info/
.pytest_cache/
.mypy_cache/
.ruff_cache/
.coverage
htmlcov/
.DS_Store
.pypeline.lock
`
