package main

import (
	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/services"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dirFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &dirFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "pypeline",
		Short:         "Scaffold and package Snowflake ETL pipeline projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(services.WithCommand(cmd.Context(), cmd.Name()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "directory", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON output")

	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newPackageCommand(ctx))
	rootCmd.AddCommand(newSyncDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
