package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gctalent/talent-backoffice/internal/config"
	"github.com/gctalent/talent-backoffice/internal/services"
	"github.com/gctalent/talent-backoffice/internal/store"
)

func newSeedCommand(cfg *config.Configuration) *cobra.Command {
	var (
		count   int
		ifEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			ctx := cmd.Context()

			db, err := store.NewDBWithContext(ctx, cfg.Database.Path)
			if err != nil {
				return err
			}
			st := store.NewStore(db)
			defer func() { _ = st.Close() }()

			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			seed := services.NewSeedService(st)
			if ifEmpty {
				seeded, err := seed.SeedIfEmpty(ctx, count)
				if err != nil {
					return err
				}
				if !seeded {
					color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "database already has candidates, nothing to do")
					return nil
				}
			} else if err := seed.Seed(ctx, count); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "seeded %d candidates into %s\n", count, cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(databaseFlags(cfg))
	cmd.Flags().IntVar(&count, "count", defaultSeedCount, "Number of candidates")
	cmd.Flags().BoolVar(&ifEmpty, "if-empty", false, "Only seed a database without candidates")

	return cmd
}
