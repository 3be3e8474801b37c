package main

import (
	"errors"
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gctalent/talent-backoffice/internal/config"
)

const envPrefix = "BACKOFFICE"

func newRootCommand(cfg *config.Configuration) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "backoffice",
		Short:         "Talent back-office table service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			loadConfigFile,
			func(*cobra.Command, []string) error { return setupLogging(cfg) },
		),
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = zap.L().Sync()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json) keyed by flag name")
	rootCmd.PersistentFlags().AddFlagSet(logFlags(cfg))

	rootCmd.AddCommand(
		newRunCommand(cfg),
		newSeedCommand(cfg),
		newInspectCommand(cfg),
	)

	return rootCmd
}

func logFlags(cfg *config.Configuration) *pflag.FlagSet {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	return fs
}

func databaseFlags(cfg *config.Configuration) *pflag.FlagSet {
	fs := pflag.NewFlagSet("database", pflag.ContinueOnError)
	fs.StringVar(&cfg.Database.Path, "db-path", cfg.Database.Path, "DuckDB file path, :memory: for an in-memory database")
	return fs
}

func tablesFlags(cfg *config.Configuration) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tables", pflag.ContinueOnError)
	fs.StringVar(&cfg.Tables.PresetsFile, "presets-file", cfg.Tables.PresetsFile, "TOML file of table presets")
	fs.IntVar(&cfg.Tables.MaxPageSize, "max-page-size", cfg.Tables.MaxPageSize, "Largest page size served")
	fs.IntVar(&cfg.Tables.ExportMaxRows, "export-max-rows", cfg.Tables.ExportMaxRows, "Row cap of an xlsx export")
	return fs
}

// loadConfigFile fills flags that were set neither on the command line nor
// in the environment.
func loadConfigFile(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s in %s: %w", f.Name, path, err))
		}
	})
	return errors.Join(errs...)
}

func setupLogging(cfg *config.Configuration) error {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var zc zap.Config
	switch cfg.LogFormat {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
