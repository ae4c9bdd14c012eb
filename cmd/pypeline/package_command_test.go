package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbrown540/pypeline-cli/internal/services"
	"github.com/dbrown540/pypeline-cli/internal/testsupport"
)

func TestPackageCommandArchivesProject(t *testing.T) {
	setupHome(t)
	proj := testsupport.NewProject(t, "demo_pipeline", "1.2.0")
	testsupport.WriteFile(t, proj.Root(), "src/demo_pipeline/__init__.py", "")
	testsupport.WriteFile(t, proj.Root(), "src/demo_pipeline/jobs.py", "def run():\n    pass\n")

	stdout, _, err := runCLI(t, "--directory", proj.Root(), "package")
	if err != nil {
		t.Fatalf("package: %v", err)
	}
	if !strings.Contains(stdout, "Archived") {
		t.Fatalf("expected archive summary, got:\n%s", stdout)
	}

	archive := filepath.Join(proj.SnowflakeDir(), "demo_pipeline-1.2.0.zip")
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("expected archive at %s: %v", archive, err)
	}
}

func TestPackageCommandJSONOutput(t *testing.T) {
	setupHome(t)
	proj := testsupport.NewProject(t, "demo_pipeline", "1.2.0")
	testsupport.WriteFile(t, proj.Root(), "src/demo_pipeline/__init__.py", "")

	stdout, _, err := runCLI(t, "--directory", proj.Root(), "--json", "package")
	if err != nil {
		t.Fatalf("package --json: %v", err)
	}

	var payload struct {
		BuildID          string `json:"build_id"`
		Strategy         string `json:"strategy"`
		ProjectName      string `json:"project_name"`
		Version          string `json:"version"`
		VerifiedManifest bool   `json:"verified_manifest"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("parse JSON output: %v\n%s", err, stdout)
	}
	if payload.ProjectName != "demo_pipeline" || payload.Version != "1.2.0" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.BuildID == "" {
		t.Fatal("expected a build ID")
	}
	if !payload.VerifiedManifest {
		t.Fatal("expected manifest verification to pass")
	}
}

func TestPackageCommandOutsideProject(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()

	_, _, err := runCLI(t, "--directory", dir, "package")
	if !errors.Is(err, services.ErrNotInProject) {
		t.Fatalf("expected ErrNotInProject, got %v", err)
	}
}
