package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/deps"
	"github.com/dbrown540/pypeline-cli/internal/manifest"
)

func newSyncDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-deps",
		Short: "Copy declared dependencies into the project manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.resolveProject()
			if err != nil {
				return err
			}

			specifiers, err := deps.Read(proj.DepsFilePath())
			if err != nil {
				return err
			}
			if err := manifest.SetKey(proj.ManifestPath(), "project.dependencies", specifiers); err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"manifest":     proj.ManifestPath(),
					"dependencies": specifiers,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Synced %d dependencies into %s\n", len(specifiers), proj.ManifestPath())
			for _, specifier := range specifiers {
				fmt.Fprintf(out, "  %s\n", specifier)
			}
			return nil
		},
	}
}
