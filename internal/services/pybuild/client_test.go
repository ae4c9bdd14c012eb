package pybuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbrown540/pypeline-cli/internal/services"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("PYBUILD_HELPER_MODE") {
	case "success":
		fmt.Println("* Building wheel...")
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "ERROR: backend crashed")
		os.Exit(1)
	}
	os.Exit(2)
}

func stubCommand(t *testing.T, mode string, captured *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append([]string{name}, args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "PYBUILD_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestBuildStreamsOutput(t *testing.T) {
	var captured []string
	stubCommand(t, "success", &captured)

	var stdout, stderr bytes.Buffer
	cli := NewCLI("/proj/.venv/bin/python", WithOutput(&stdout, &stderr))

	if err := cli.Build(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(captured) != 3 || captured[0] != "/proj/.venv/bin/python" || captured[1] != "-m" || captured[2] != "build" {
		t.Fatalf("unexpected command: %v", captured)
	}
	if !strings.Contains(stdout.String(), "Building wheel") {
		t.Fatalf("expected streamed output, got %q", stdout.String())
	}
}

func TestBuildNonZeroExit(t *testing.T) {
	stubCommand(t, "fail", nil)

	var stdout, stderr bytes.Buffer
	cli := NewCLI("python", WithOutput(&stdout, &stderr))

	err := cli.Build(context.Background(), t.TempDir())
	if !errors.Is(err, services.ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}
	// The failing tool's output reaches the user for diagnosis.
	if !strings.Contains(stderr.String(), "backend crashed") {
		t.Fatalf("expected tool stderr to be streamed, got %q", stderr.String())
	}
}

func TestBuildRequiresRoot(t *testing.T) {
	cli := NewCLI("python")
	if err := cli.Build(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestResolveInterpreterMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".venv", "bin", "python")
	_, err := ResolveInterpreter(missing, "")
	if !errors.Is(err, services.ErrToolchainMissing) {
		t.Fatalf("expected ErrToolchainMissing, got %v", err)
	}
}

func TestResolveInterpreterPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "python3")
	if err := os.WriteFile(override, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveInterpreter(filepath.Join(dir, "absent"), override)
	if err != nil {
		t.Fatalf("ResolveInterpreter: %v", err)
	}
	if got != override {
		t.Fatalf("got %q, want %q", got, override)
	}
}

func TestResolveInterpreterUsesVenv(t *testing.T) {
	dir := t.TempDir()
	venv := filepath.Join(dir, ".venv", "bin", "python")
	if err := os.MkdirAll(filepath.Dir(venv), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(venv, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveInterpreter(venv, "")
	if err != nil {
		t.Fatalf("ResolveInterpreter: %v", err)
	}
	if got != venv {
		t.Fatalf("got %q, want %q", got, venv)
	}
}
