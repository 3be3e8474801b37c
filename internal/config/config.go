package config

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"go.uber.org/zap/zapcore"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

type Configuration struct {
	Server    Server
	Database  Database
	Tables    Tables
	Workers   int    `default:"4"`
	LogFormat string `default:"console"`
	LogLevel  string `default:"debug"`
}

type Server struct {
	ServerMode      string        `default:"dev"`
	HTTPPort        int           `default:"8000"`
	ShutdownTimeout time.Duration `default:"10s"`
}

type Database struct {
	// Path of the DuckDB file. ":memory:" keeps everything in memory.
	Path string `default:":memory:"`
	// Seed loads demo data when the database has no candidates.
	Seed bool `default:"false"`
}

type Tables struct {
	// PresetsFile is a TOML file of per-table initial states. Built-in
	// presets are used when empty.
	PresetsFile   string
	MaxPageSize   int `default:"100"`
	ExportMaxRows int `default:"10000"`
}

// NewConfiguration returns a configuration with every default set.
func NewConfiguration() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// defaults only fails on malformed tags
		panic(err)
	}
	return cfg
}

func (c *Configuration) Validate() error {
	if c.Server.ServerMode != ServerModeDev && c.Server.ServerMode != ServerModeProd {
		return fmt.Errorf("invalid server mode %q: must be %q or %q", c.Server.ServerMode, ServerModeDev, ServerModeProd)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be console or json", c.LogFormat)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Tables.MaxPageSize <= 0 {
		return fmt.Errorf("max page size must be positive, got %d", c.Tables.MaxPageSize)
	}
	if c.Tables.ExportMaxRows <= 0 {
		return fmt.Errorf("export max rows must be positive, got %d", c.Tables.ExportMaxRows)
	}
	return nil
}

// DebugMap returns the configuration as flat fields for structured logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server.mode":             c.Server.ServerMode,
		"server.http_port":        c.Server.HTTPPort,
		"server.shutdown_timeout": c.Server.ShutdownTimeout.String(),
		"database.path":           c.Database.Path,
		"database.seed":           c.Database.Seed,
		"tables.presets_file":     c.Tables.PresetsFile,
		"tables.max_page_size":    c.Tables.MaxPageSize,
		"tables.export_max_rows":  c.Tables.ExportMaxRows,
		"workers":                 c.Workers,
		"log_format":              c.LogFormat,
		"log_level":               c.LogLevel,
	}
}
