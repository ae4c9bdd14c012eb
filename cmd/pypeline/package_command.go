package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/distribution"
)

func newPackageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "package",
		Short: "Archive the project source tree into a Snowflake-compatible zip",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
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
			builder := distribution.NewArchiveBuilder(proj,
				distribution.WithArchiveLogger(logger),
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
			for _, warning := range report.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			fmt.Fprintf(out, "Archived %d files (%s), manifest at root: %s\n",
				report.FileCount, formatSize(report.TotalSize()), yesNo(report.VerifiedManifest))
			fmt.Fprintln(out, "Upload with: PUT file://dist/snowflake/*.zip @your_stage AUTO_COMPRESS=FALSE")
			return nil
		},
	}
}
