package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gctalent/talent-backoffice/internal/config"
	"github.com/gctalent/talent-backoffice/internal/services"
	"github.com/gctalent/talent-backoffice/internal/store"
	"github.com/gctalent/talent-backoffice/pkg/scheduler"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

func newInspectCommand(cfg *config.Configuration) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "inspect URL...",
		Short: "Decode table URLs into view states",
		Example: `  backoffice inspect '/api/v1/tables/candidates/rows?search_term=roy&page=2'
  backoffice inspect --table skills '?sort_rule=[{"id":"candidates","desc":true}]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.LoadPresets(cfg.Tables.PresetsFile)
			if err != nil {
				return err
			}

			// Decoding runs no query, the database only backs the registry.
			db, err := store.NewDBWithContext(cmd.Context(), ":memory:")
			if err != nil {
				return err
			}
			st := store.NewStore(db)
			defer func() { _ = st.Close() }()

			sched := scheduler.NewScheduler(1)
			defer sched.Close()

			limits := services.TableLimits{MaxPageSize: cfg.Tables.MaxPageSize, ExportMaxRows: cfg.Tables.ExportMaxRows}
			tables := services.NewTableService(st, services.NewCandidateService(st, sched), presets, limits)

			for i, raw := range args {
				u, err := url.Parse(raw)
				if err != nil {
					return fmt.Errorf("invalid url %q: %w", raw, err)
				}

				name := table
				if name == "" {
					var ok bool
					if name, ok = tableFromPath(u.Path); !ok {
						return fmt.Errorf("no table in %q, use --table", raw)
					}
				}

				view, err := tables.Decode(name, u)
				if err != nil {
					return err
				}

				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				printView(cmd.OutOrStdout(), name, view)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "Table name, read from the URL path when empty")
	cmd.Flags().AddFlagSet(tablesFlags(cfg))

	return cmd
}

// tableFromPath returns the segment after "tables" in a rows URL path.
func tableFromPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p == "tables" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], true
		}
	}
	return "", false
}

func printView(w io.Writer, table string, view *services.DecodedView) {
	label := color.New(color.Bold)
	changed := color.New(color.FgYellow)
	unchanged := color.New(color.Faint)

	field := func(name, value string, isDefault bool) {
		label.Fprintf(w, "%-15s ", name+":")
		if isDefault {
			unchanged.Fprintf(w, "%s (default)\n", value)
			return
		}
		changed.Fprintln(w, value)
	}

	s, d := view.State, view.Defaults

	label.Fprintf(w, "%-15s ", "table:")
	fmt.Fprintln(w, table)
	label.Fprintf(w, "%-15s ", "canonical:")
	color.New(color.FgCyan).Fprintln(w, view.URL.String())

	field("sorting", formatSorting(s.Sorting), s.Sorting.Equal(d.Sorting))
	field("search", formatSearch(s.Search), s.Search == d.Search)
	field("pagination", fmt.Sprintf("page %d, %d per page", s.Pagination.PageIndex+1, s.Pagination.PageSize), s.Pagination == d.Pagination)
	field("hidden columns", formatList(s.HiddenColumns), s.HiddenColumns.Equal(d.HiddenColumns))
}

func formatSorting(s tablestate.Sorting) string {
	if len(s) == 0 {
		return "none"
	}
	rules := make([]string, 0, len(s))
	for _, r := range s {
		dir := "asc"
		if r.Desc {
			dir = "desc"
		}
		rules = append(rules, r.ColumnID+" "+dir)
	}
	return strings.Join(rules, ", ")
}

func formatSearch(s tablestate.Search) string {
	if s.Term == "" {
		return "none"
	}
	if s.IsGlobal() {
		return fmt.Sprintf("%q in all columns", s.Term)
	}
	return fmt.Sprintf("%q in %s", s.Term, s.Column)
}

func formatList(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
