// Package pybuild wraps the Python build frontend (`python -m build`) invoked
// during wheel builds.
package pybuild

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dbrown540/pypeline-cli/internal/services"
)

var commandContext = exec.CommandContext

// Client defines the build frontend behaviour.
type Client interface {
	Build(ctx context.Context, root string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithOutput redirects the streamed subprocess output. Defaults to the
// invoking process's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *CLI) {
		if stdout != nil {
			c.stdout = stdout
		}
		if stderr != nil {
			c.stderr = stderr
		}
	}
}

// CLI runs the build frontend through a concrete interpreter.
type CLI struct {
	python string
	stdout io.Writer
	stderr io.Writer
}

// NewCLI constructs a client around the given interpreter path.
func NewCLI(python string, opts ...Option) *CLI {
	cli := &CLI{python: python, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Build runs `python -m build` with root as the working directory. Output is
// streamed live, not buffered, so the user observes progress in real time. No
// timeout is imposed; a hung build tool blocks the invocation. A non-zero
// exit surfaces as services.ErrBuildFailed.
func (c *CLI) Build(ctx context.Context, root string) error {
	if strings.TrimSpace(root) == "" {
		return errors.New("project root required")
	}

	cmd := commandContext(ctx, c.python, "-m", "build")
	cmd.Dir = root
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return services.Wrap(services.ErrBuildFailed, "pybuild", "build",
				exitErr.String(), nil)
		}
		return services.Wrap(services.ErrBuildFailed, "pybuild", "start", c.python, err)
	}
	return nil
}

// ResolveInterpreter picks the interpreter for the build: the configured
// override when set, otherwise the project-local venv interpreter. The chosen
// path must exist; a missing interpreter is an environment precondition
// failure, not something this tool provisions.
func ResolveInterpreter(venvPython, override string) (string, error) {
	candidate := strings.TrimSpace(override)
	if candidate == "" {
		candidate = venvPython
	}
	if _, err := os.Stat(candidate); err != nil {
		return "", services.Wrap(services.ErrToolchainMissing, "pybuild", "resolve",
			candidate+" (create it with: python -m venv .venv)", nil)
	}
	return candidate, nil
}
