package main

import (
	"strings"
	"testing"

	"github.com/dbrown540/pypeline-cli/internal/testsupport"
)

func TestHistoryListRecordsPackageBuilds(t *testing.T) {
	setupHome(t)
	proj := testsupport.NewProject(t, "demo_pipeline", "1.0.0")
	testsupport.WriteFile(t, proj.Root(), "src/demo_pipeline/__init__.py", "")

	if _, _, err := runCLI(t, "--directory", proj.Root(), "package"); err != nil {
		t.Fatalf("package: %v", err)
	}

	stdout, _, err := runCLI(t, "--directory", proj.Root(), "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(stdout, "demo_pipeline") || !strings.Contains(stdout, "archive") {
		t.Fatalf("expected the recorded build in output:\n%s", stdout)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	setupHome(t)
	proj := testsupport.NewProject(t, "demo_pipeline", "1.0.0")

	stdout, _, err := runCLI(t, "--directory", proj.Root(), "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(stdout, "No builds recorded.") {
		t.Fatalf("expected empty-ledger message, got:\n%s", stdout)
	}
}

func TestHistoryClearRemovesRecords(t *testing.T) {
	setupHome(t)
	proj := testsupport.NewProject(t, "demo_pipeline", "1.0.0")
	testsupport.WriteFile(t, proj.Root(), "src/demo_pipeline/__init__.py", "")

	if _, _, err := runCLI(t, "--directory", proj.Root(), "package"); err != nil {
		t.Fatalf("package: %v", err)
	}

	stdout, _, err := runCLI(t, "--directory", proj.Root(), "history", "clear")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	if !strings.Contains(stdout, "Removed 1 build records.") {
		t.Fatalf("unexpected clear output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, "--directory", proj.Root(), "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(stdout, "No builds recorded.") {
		t.Fatalf("expected an empty ledger after clear, got:\n%s", stdout)
	}
}
