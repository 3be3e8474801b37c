// Package config defines the configuration structure for the talent back-office.
//
// Configuration is organized into logical sections and filled in this
// order, later sources winning:
//
//	struct defaults (creasty/defaults) → config file (viper) → env (BACKOFFICE_*) → flags
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Database       - DuckDB location and demo data
//	├── Tables         - Table presets and limits
//	├── Workers        - Query scheduler workers
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ ShutdownTimeout  │ 10s     │ Grace period for in-flight requests    │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Database Configuration
//
//	┌───────┬────────────┬────────────────────────────────────────────┐
//	│ Field │ Default    │ Description                                │
//	├───────┼────────────┼────────────────────────────────────────────┤
//	│ Path  │ ":memory:" │ DuckDB file path                           │
//	│ Seed  │ false      │ Load demo data into an empty database      │
//	└───────┴────────────┴────────────────────────────────────────────┘
//
// # Tables Configuration
//
//	┌───────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field         │ Default │ Description                              │
//	├───────────────┼─────────┼──────────────────────────────────────────┤
//	│ PresetsFile   │ ""      │ TOML file of per-table initial states    │
//	│ MaxPageSize   │ 100     │ Larger page sizes are clamped            │
//	│ ExportMaxRows │ 10000   │ Row cap of an xlsx export                │
//	└───────────────┴─────────┴──────────────────────────────────────────┘
//
// # Table Presets
//
// A preset is the initial state of a table: what a user sees with an empty
// query string. The file has one section per table:
//
//	[candidates]
//	sorting = [{ id = "appliedAt", desc = true }]
//	page_size = 25
//	hidden_columns = ["skills"]
//
//	[candidates.search]
//	term = ""
//	column = ""
//
// Unknown keys are logged and ignored. Without a file the built-in presets
// from DefaultPresets are used.
//
// # Debug Logging
//
// DebugMap returns flat fields for logging the effective configuration:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
