package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/dbrown540/pypeline-cli/internal/config"
	"github.com/dbrown540/pypeline-cli/internal/history"
	"github.com/dbrown540/pypeline-cli/internal/logging"
	"github.com/dbrown540/pypeline-cli/internal/project"
)

type commandContext struct {
	configFlag *string
	dirFlag    *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, dirFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		dirFlag:    dirFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// workingDir returns the explicit --directory value when given, otherwise the
// process working directory. Threading this through keeps root resolution
// testable without chdir games.
func (c *commandContext) workingDir() (string, error) {
	if c.dirFlag != nil && strings.TrimSpace(*c.dirFlag) != "" {
		return config.ExpandPath(*c.dirFlag)
	}
	return os.Getwd()
}

// resolveProject locates the managed project enclosing the working directory.
// Resolution failures propagate unmodified.
func (c *commandContext) resolveProject() (*project.Context, error) {
	start, err := c.workingDir()
	if err != nil {
		return nil, err
	}
	return project.Resolve(start)
}

func (c *commandContext) newLogger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// openHistory opens the build ledger, or returns nil when disabled. Callers
// treat ledger failures as non-fatal.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(cfg.History.Path)
}
