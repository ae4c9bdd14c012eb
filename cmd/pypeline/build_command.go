package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/distribution"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build wheel, sdist, and Snowflake-compatible zip distributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			proj, err := ctx.resolveProject()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !ctx.JSONMode() {
				fmt.Fprintf(out, "Project root: %s\n", proj.Root())
			}

			logger := ctx.newLogger()
			builder := distribution.NewWheelBuilder(proj,
				distribution.WithPythonOverride(cfg.Build.PythonBinary),
				distribution.WithWheelLogger(logger),
			)

			report, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}
			recordBuild(ctx, proj, report, logger)

			if ctx.JSONMode() {
				return writeJSON(cmd, reportPayload(proj, report))
			}

			printArtifacts(out, report)
			fmt.Fprintf(out, "Build complete: %d artifacts, %s total\n",
				len(report.Artifacts), formatSize(report.TotalSize()))
			fmt.Fprintln(out, "Upload with: PUT file://dist/snowflake/*.zip @your_stage AUTO_COMPRESS=FALSE")
			return nil
		},
	}
}
