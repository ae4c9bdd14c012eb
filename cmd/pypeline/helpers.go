package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dbrown540/pypeline-cli/internal/distribution"
	"github.com/dbrown540/pypeline-cli/internal/history"
	"github.com/dbrown540/pypeline-cli/internal/logging"
	"github.com/dbrown540/pypeline-cli/internal/project"
)

// recordBuild appends the report to the build ledger. Ledger trouble is worth
// a debug line, never a failed build.
func recordBuild(cctx *commandContext, proj *project.Context, report *distribution.Report, logger *slog.Logger) {
	store, err := cctx.openHistory()
	if err != nil {
		logger.Debug("history unavailable", logging.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	rec := historyRecord(proj, report)
	if err := store.Append(context.Background(), rec); err != nil {
		logger.Debug("history append failed", logging.Error(err))
	}
}

func printArtifacts(out io.Writer, report *distribution.Report) {
	if len(report.Artifacts) == 0 {
		return
	}

	if !isTerminal() {
		for _, a := range report.Artifacts {
			fmt.Fprintf(out, "%s\t%s\t%s\n", a.Kind, a.Name, formatSize(a.Size))
		}
		return
	}

	rows := make([][]string, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		rows = append(rows, []string{string(a.Kind), a.Name, formatSize(a.Size)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"KIND", "FILE", "SIZE"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))
}

func reportPayload(proj *project.Context, report *distribution.Report) map[string]any {
	artifacts := make([]map[string]any, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		artifacts = append(artifacts, map[string]any{
			"kind":       string(a.Kind),
			"name":       a.Name,
			"path":       a.Path,
			"size_bytes": a.Size,
		})
	}
	warnings := report.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return map[string]any{
		"build_id":          report.BuildID,
		"strategy":          report.Strategy,
		"project_root":      proj.Root(),
		"project_name":      report.ProjectName,
		"version":           report.Version,
		"artifacts":         artifacts,
		"file_count":        report.FileCount,
		"total_size_bytes":  report.TotalSize(),
		"verified_manifest": report.VerifiedManifest,
		"warnings":          warnings,
	}
}

func historyRecord(proj *project.Context, report *distribution.Report) history.Record {
	return history.Record{
		BuildID:     report.BuildID,
		ProjectRoot: proj.Root(),
		ProjectName: report.ProjectName,
		Version:     report.Version,
		Strategy:    report.Strategy,
		Artifacts:   len(report.Artifacts),
		FileCount:   report.FileCount,
		SizeBytes:   report.TotalSize(),
		Verified:    report.VerifiedManifest,
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
