package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbrown540/pypeline-cli/internal/config"
	"github.com/dbrown540/pypeline-cli/internal/project"
	"github.com/dbrown540/pypeline-cli/internal/scaffold"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	var (
		destination string
		name        string
		authorName  string
		authorEmail string
		description string
		license     string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new pypeline project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if authorName == "" {
				authorName = cfg.Author.Name
			}
			if authorEmail == "" {
				authorEmail = cfg.Author.Email
			}
			if license == "" {
				license = cfg.Projects.License
			}

			dest, err := config.ExpandPath(destination)
			if err != nil {
				return err
			}
			root := filepath.Join(dest, name)

			proj, err := project.New(root)
			if err != nil {
				return err
			}
			opts := scaffold.Options{
				Name:        name,
				AuthorName:  authorName,
				AuthorEmail: authorEmail,
				Description: description,
				License:     license,
			}
			if err := scaffold.Create(proj, opts); err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"root":     proj.Root(),
					"manifest": proj.ManifestPath(),
					"name":     name,
					"license":  opts.License,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created project %s at %s\n", name, proj.Root())
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  cd %s\n", root)
			fmt.Fprintln(out, "  python -m venv .venv && .venv/bin/pip install -r requirements (see pypeline-deps.txt)")
			fmt.Fprintln(out, "  pypeline build")
			return nil
		},
	}

	cmd.Flags().StringVar(&destination, "destination", ".", "directory the project folder is created under")
	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	cmd.Flags().StringVar(&authorName, "author-name", "", "author name for pyproject.toml")
	cmd.Flags().StringVar(&authorEmail, "author-email", "", "author email for pyproject.toml")
	cmd.Flags().StringVar(&description, "description", "", "short project description")
	cmd.Flags().StringVar(&license, "license", "", "license identifier")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
