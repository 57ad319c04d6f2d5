package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Pool settings applied by Open.
const (
	MaxOpenConns    = 10
	MaxIdleConns    = 5
	ConnMaxLifetime = 5 * time.Minute
)

// Open creates a connection pool for url. The pool connects lazily; an
// unparsable url is reported immediately.
func Open(url string, logger *slog.Logger) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db := stdlib.OpenDB(*connConfig)

	db.SetMaxOpenConns(MaxOpenConns)
	db.SetMaxIdleConns(MaxIdleConns)
	db.SetConnMaxLifetime(ConnMaxLifetime)

	if logger != nil {
		logger.Debug("database pool configured",
			slog.Int("max_open_conns", MaxOpenConns),
			slog.Int("max_idle_conns", MaxIdleConns))
	}
	return db, nil
}

// Ping verifies the connection within timeout.
func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
