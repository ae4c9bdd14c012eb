package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/dbrown540/pypeline-cli/internal/manifest"
	"github.com/dbrown540/pypeline-cli/internal/services"
)

const sampleManifest = `[build-system]
requires = ["hatchling", "hatch-vcs"]
build-backend = "hatchling.build"

[project]
name = "etl_pipeline"
version = "1.2.3"
dependencies = ["numpy>=2.0", "pandas>=2.3"]

[tool.pypeline]

[tool.ruff]
line-length = 100

[tool.ruff.lint]
select = ["E", "F"]
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAccessors(t *testing.T) {
	doc, err := manifest.Load(writeSample(t, sampleManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := doc.Name(); got != "etl_pipeline" {
		t.Errorf("Name: got %q", got)
	}
	if got := doc.Version(); got != "1.2.3" {
		t.Errorf("Version: got %q", got)
	}
	if got := doc.Dependencies(); !reflect.DeepEqual(got, []string{"numpy>=2.0", "pandas>=2.3"}) {
		t.Errorf("Dependencies: got %v", got)
	}
	if !doc.HasMarker() {
		t.Error("expected ownership marker")
	}
}

func TestVersionPlaceholderWhenDynamic(t *testing.T) {
	doc, err := manifest.Load(writeSample(t, `[project]
name = "etl_pipeline"
dynamic = ["version"]

[tool.pypeline]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := doc.Version(); got != manifest.PlaceholderVersion {
		t.Errorf("Version: got %q, want placeholder", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeSample(t, "not [valid ===")
	_, err := manifest.Load(path)
	if !errors.Is(err, services.ErrManifest) {
		t.Fatalf("expected ErrManifest, got %v", err)
	}

	// Original file stays untouched on parse failure.
	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(raw) != "not [valid ===" {
		t.Fatalf("original file modified: %q", raw)
	}
}

func TestSetKeyPreservesUnrelatedKeys(t *testing.T) {
	path := writeSample(t, sampleManifest)

	deps := []string{"snowflake-snowpark-python>=1.42.0", "pyspark>=4.0.1"}
	if err := manifest.SetKey(path, "project.dependencies", deps); err != nil {
		t.Fatalf("SetKey: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := toml.Unmarshal(raw, &got); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	projectTable := got["project"].(map[string]any)
	gotDeps := projectTable["dependencies"].([]any)
	if len(gotDeps) != 2 || gotDeps[0] != deps[0] || gotDeps[1] != deps[1] {
		t.Fatalf("dependencies not replaced: %v", gotDeps)
	}
	if projectTable["name"] != "etl_pipeline" || projectTable["version"] != "1.2.3" {
		t.Fatalf("project table lost unrelated keys: %v", projectTable)
	}

	buildSystem := got["build-system"].(map[string]any)
	requires := buildSystem["requires"].([]any)
	if len(requires) != 2 || requires[0] != "hatchling" {
		t.Fatalf("build-system not preserved: %v", buildSystem)
	}

	tool := got["tool"].(map[string]any)
	ruff := tool["ruff"].(map[string]any)
	if ruff["line-length"] != int64(100) {
		t.Fatalf("tool.ruff not preserved: %v", ruff)
	}
	lint := ruff["lint"].(map[string]any)
	sel := lint["select"].([]any)
	if len(sel) != 2 || sel[0] != "E" {
		t.Fatalf("nested tool.ruff.lint not preserved: %v", lint)
	}
	if _, ok := tool["pypeline"]; !ok {
		t.Fatal("ownership marker dropped")
	}
}

func TestSetCreatesIntermediateTables(t *testing.T) {
	path := writeSample(t, "[project]\nname = \"x\"\n\n[tool.pypeline]\n")
	if err := manifest.SetKey(path, "tool.pypeline.stage.name", "@etl_stage"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}

	doc, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Set("tool.pypeline.stage.name", "@other"); err != nil {
		t.Fatalf("Set on existing path: %v", err)
	}
}

func TestSetRejectsNonTableSegment(t *testing.T) {
	path := writeSample(t, "[project]\nname = \"x\"\n")
	doc, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Set("project.name.sub", "y")
	if !errors.Is(err, services.ErrManifest) {
		t.Fatalf("expected ErrManifest for non-table segment, got %v", err)
	}
}

func TestSaveIsAtomicReplacement(t *testing.T) {
	path := writeSample(t, sampleManifest)
	doc, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Set("project.version", "2.0.0"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}

	reloaded, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Version() != "2.0.0" {
		t.Fatalf("version not persisted: %q", reloaded.Version())
	}
}
