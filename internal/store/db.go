package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"
)

const (
	openMaxElapsedTime = 10 * time.Second
	openMaxTries       = 5
)

// NewDB opens the DuckDB database at path. ":memory:" opens a private
// in-memory database. A file locked by another process is retried with an
// exponential backoff.
func NewDB(path string) (*sql.DB, error) {
	return NewDBWithContext(context.Background(), path)
}

func NewDBWithContext(ctx context.Context, path string) (*sql.DB, error) {
	log := zap.S().Named("store")

	db, err := sql.Open("duckdb", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb %q: %w", path, err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if err := db.PingContext(ctx); err != nil {
			log.Debugw("database not ready", "path", path, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(openMaxElapsedTime),
		backoff.WithMaxTries(openMaxTries),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to duckdb %q: %w", path, err)
	}

	return db, nil
}

func dsn(path string) string {
	if path == ":memory:" {
		return ""
	}
	return path
}
