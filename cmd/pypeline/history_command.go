package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the local build ledger",
	}
	cmd.AddCommand(newHistoryListCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		all   bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded builds, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in the configuration.")
				return nil
			}
			defer store.Close()

			root := ""
			if !all {
				proj, err := ctx.resolveProject()
				if err != nil {
					return err
				}
				root = proj.Root()
			}

			records, err := store.List(cmd.Context(), root, limit)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, historyPayload(records))
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No builds recorded.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					shortBuildID(rec.BuildID),
					rec.ProjectName,
					rec.Version,
					rec.Strategy,
					fmt.Sprintf("%d", rec.FileCount),
					formatSize(rec.SizeBytes),
					yesNo(rec.Verified),
					rec.CreatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"BUILD", "PROJECT", "VERSION", "STRATEGY", "FILES", "SIZE", "VERIFIED", "CREATED"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list builds across every project")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of builds to show (0 for all)")

	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove recorded builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in the configuration.")
				return nil
			}
			defer store.Close()

			root := ""
			if !all {
				proj, err := ctx.resolveProject()
				if err != nil {
					return err
				}
				root = proj.Root()
			}

			removed, err := store.Clear(cmd.Context(), root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d build records.\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "clear builds across every project")

	return cmd
}

func historyPayload(records []history.Record) []map[string]any {
	payload := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		payload = append(payload, map[string]any{
			"build_id":     rec.BuildID,
			"project_root": rec.ProjectRoot,
			"project_name": rec.ProjectName,
			"version":      rec.Version,
			"strategy":     rec.Strategy,
			"artifacts":    rec.Artifacts,
			"file_count":   rec.FileCount,
			"size_bytes":   rec.SizeBytes,
			"verified":     rec.Verified,
			"created_at":   rec.CreatedAt,
		})
	}
	return payload
}

func shortBuildID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
