package scaffold_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbrown540/pypeline-cli/internal/manifest"
	"github.com/dbrown540/pypeline-cli/internal/project"
	"github.com/dbrown540/pypeline-cli/internal/scaffold"
)

func validOptions() scaffold.Options {
	return scaffold.Options{
		Name:        "etl_pipeline",
		AuthorName:  "Dana Brown",
		AuthorEmail: "dana@example.com",
		Description: "Loads things into Snowflake",
		License:     "MIT",
	}
}

func TestCreateProducesManagedProject(t *testing.T) {
	root := filepath.Join(t.TempDir(), "etl_pipeline")
	ctx, err := project.New(root)
	if err != nil {
		t.Fatal(err)
	}

	if err := scaffold.Create(ctx, validOptions()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The generated tree resolves as a managed project.
	resolved, err := project.Resolve(filepath.Join(root, "src", "etl_pipeline"))
	if err != nil {
		t.Fatalf("generated project does not resolve: %v", err)
	}
	if resolved.Root() != root {
		t.Fatalf("resolved root %q, want %q", resolved.Root(), root)
	}

	doc, err := manifest.Load(ctx.ManifestPath())
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if doc.Name() != "etl_pipeline" {
		t.Errorf("manifest name: %q", doc.Name())
	}
	if !doc.HasMarker() {
		t.Error("generated manifest missing ownership marker")
	}
	if doc.Version() != manifest.PlaceholderVersion {
		t.Errorf("expected dynamic version placeholder, got %q", doc.Version())
	}

	for _, rel := range []string{
		"src/etl_pipeline/__init__.py",
		"tests/__init__.py",
		"pypeline-deps.txt",
		".gitignore",
		"README.md",
	} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	depsRaw, err := os.ReadFile(ctx.DepsFilePath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(depsRaw), "snowflake-snowpark-python>=1.42.0") {
		t.Error("default dependencies missing from side file")
	}

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "# Etl Pipeline") {
		t.Errorf("README heading not derived from name: %q", readme)
	}
}

func TestCreateRefusesExistingProject(t *testing.T) {
	root := t.TempDir()
	ctx, err := project.New(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := scaffold.Create(ctx, validOptions()); err != nil {
		t.Fatal(err)
	}
	if err := scaffold.Create(ctx, validOptions()); err == nil {
		t.Fatal("expected error creating over existing project")
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"etl_pipeline", true},
		{"_private", true},
		{"pipeline2", true},
		{"", false},
		{"2pipeline", false},
		{"my-project", false},
		{"my project", false},
		{"class", false},
		{"lambda", false},
		{".hidden", false},
		{"CON", false},
		{"lpt1", false},
		{strings.Repeat("a", 256), false},
	}
	for _, tc := range cases {
		err := scaffold.ValidateName(tc.name)
		if tc.valid && err != nil {
			t.Errorf("ValidateName(%q): unexpected error %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("ValidateName(%q): expected error", tc.name)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := scaffold.ValidateEmail("dana@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "dana", "dana@", "@example.com", "a b@example.com"} {
		if err := scaffold.ValidateEmail(bad); err == nil {
			t.Errorf("ValidateEmail(%q): expected error", bad)
		}
	}
}

func TestValidateLicenseCanonicalizes(t *testing.T) {
	got, err := scaffold.ValidateLicense("mit")
	if err != nil {
		t.Fatal(err)
	}
	if got != "MIT" {
		t.Fatalf("got %q, want MIT", got)
	}
	if _, err := scaffold.ValidateLicense("WTFPL"); err == nil {
		t.Fatal("expected error for unsupported license")
	}
}

func TestTitle(t *testing.T) {
	if got := scaffold.Title("etl_pipeline"); got != "Etl Pipeline" {
		t.Fatalf("Title: got %q", got)
	}
}
