package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap the pypeline configuration",
	}
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand(ctx))
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"author_name":     cfg.Author.Name,
					"author_email":    cfg.Author.Email,
					"default_license": cfg.Projects.License,
					"python_binary":   cfg.Build.PythonBinary,
					"history_enabled": cfg.History.Enabled,
					"history_path":    cfg.History.Path,
					"log_format":      cfg.Logging.Format,
					"log_level":       cfg.Logging.Level,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Author:          %s <%s>\n", cfg.Author.Name, cfg.Author.Email)
			fmt.Fprintf(out, "Default license: %s\n", cfg.Projects.License)
			python := cfg.Build.PythonBinary
			if python == "" {
				python = "(project .venv)"
			}
			fmt.Fprintf(out, "Python binary:   %s\n", python)
			fmt.Fprintf(out, "History:         %s (%s)\n", enabledDisabled(cfg.History.Enabled), cfg.History.Path)
			fmt.Fprintf(out, "Logging:         %s at %s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if ctx.configFlag != nil {
				path = *ctx.configFlag
			}
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			} else {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return err
				}
				path = expanded
			}

			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
			return nil
		},
	}
}

func enabledDisabled(value bool) string {
	if value {
		return "enabled"
	}
	return "disabled"
}
