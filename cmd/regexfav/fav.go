package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/regexfav/internal/community"
	"github.com/five82/regexfav/internal/config"
	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/prefs"
)

func newFavCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favourite pattern ids",
	}
	cmd.AddCommand(
		newFavAddCmd(g, true),
		newFavAddCmd(g, false),
		newFavListCmd(g),
		newFavExportCmd(g),
		newFavImportCmd(g),
	)
	return cmd
}

func newFavAddCmd(g *globalFlags, fav bool) *cobra.Command {
	use, short := "add <id>...", "Add pattern ids to favourites"
	if !fav {
		use, short = "rm <id>...", "Remove pattern ids from favourites"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeLog, err := g.openStore()
			if err != nil {
				return err
			}
			defer closeLog()
			for _, id := range args {
				if !favorites.Persistable(id) {
					return fmt.Errorf("invalid pattern id %q", id)
				}
				if err := store.SetFavorite(id, fav); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFavListCmd(g *globalFlags) *cobra.Command {
	var fetch bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List favourites with personal ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cfg, closeLog, err := g.openStore()
			if err != nil {
				return err
			}
			defer closeLog()

			entries := store.Export().Favorites
			if len(entries) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no favourites")
				return err
			}
			if fetch {
				if err := fillRecords(cmd, cfg, entries); err != nil {
					return err
				}
			}

			t := table.New().Headers("ID", "RATING", "NAME", "PATTERN")
			for _, e := range entries {
				rating := ""
				if e.Rating > 0 {
					rating = strconv.Itoa(e.Rating)
				}
				t.Row(e.ID, rating, e.Name, e.Pattern)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
	cmd.Flags().BoolVar(&fetch, "fetch", false, "look up names and patterns from the community API")
	return cmd
}

func newFavExportCmd(g *globalFlags) *cobra.Command {
	var (
		output string
		fetch  bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write favourites and ratings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cfg, closeLog, err := g.openStore()
			if err != nil {
				return err
			}
			defer closeLog()

			export := store.Export()
			if fetch {
				if err := fillRecords(cmd, cfg, export.Favorites); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create export: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return export.WriteYAML(w)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "include names and patterns from the community API")
	return cmd
}

func newFavImportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge favourites and ratings from a YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeLog, err := g.openStore()
			if err != nil {
				return err
			}
			defer closeLog()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}
			export, err := prefs.ReadExport(r)
			if err != nil {
				return err
			}
			added, err := store.Import(export)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d new favourites\n", added)
			return err
		},
	}
}

// fillRecords looks up entries on the community API and copies their names
// and patterns in.
func fillRecords(cmd *cobra.Command, cfg config.Config, entries []prefs.ExportEntry) error {
	client, err := community.NewClient(cfg.APIBase)
	if err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	records, err := client.PatternList(cmd.Context(), ids)
	if err != nil {
		return fmt.Errorf("fetch favourites: %w", err)
	}
	byID := make(map[string]community.Pattern, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	for i := range entries {
		if rec, ok := byID[entries[i].ID]; ok {
			entries[i].Name = rec.Name
			entries[i].Pattern = rec.Pattern
		}
	}
	return nil
}
