package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/internal/config"
	"github.com/gctalent/talent-backoffice/internal/handlers"
	"github.com/gctalent/talent-backoffice/internal/server"
	"github.com/gctalent/talent-backoffice/internal/services"
	"github.com/gctalent/talent-backoffice/internal/store"
	"github.com/gctalent/talent-backoffice/pkg/scheduler"
)

const defaultSeedCount = 200

func newRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the table API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().AddFlagSet(serverFlags(cfg))
	cmd.Flags().AddFlagSet(databaseFlags(cfg))
	cmd.Flags().AddFlagSet(tablesFlags(cfg))
	cmd.Flags().BoolVar(&cfg.Database.Seed, "db-seed", cfg.Database.Seed, "Load demo data into an empty database")

	return cmd
}

func serverFlags(cfg *config.Configuration) *pflag.FlagSet {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: dev or prod")
	fs.IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP listen port")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", cfg.Server.ShutdownTimeout, "Grace period for in-flight requests")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Query scheduler workers")
	return fs
}

func run(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("run")
	log.Infow("starting back office", "config", cfg.DebugMap())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	presets, err := config.LoadPresets(cfg.Tables.PresetsFile)
	if err != nil {
		return err
	}

	db, err := store.NewDBWithContext(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	st := store.NewStore(db)
	defer func() { _ = st.Close() }()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.Database.Seed {
		if _, err := services.NewSeedService(st).SeedIfEmpty(ctx, defaultSeedCount); err != nil {
			return err
		}
	}

	sched := scheduler.NewScheduler(cfg.Workers)
	defer sched.Close()

	limits := services.TableLimits{MaxPageSize: cfg.Tables.MaxPageSize, ExportMaxRows: cfg.Tables.ExportMaxRows}
	tables := services.NewTableService(st, services.NewCandidateService(st, sched), presets, limits)
	selections := services.NewSelectionService(st, tables)
	h := handlers.New(tables, selections, services.NewExportService(tables, selections))

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
