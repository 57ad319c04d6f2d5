package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/szabmik/slim/internal/app"
	"github.com/szabmik/slim/internal/config"
	"github.com/szabmik/slim/internal/platform/postgres"
	"github.com/szabmik/slim/internal/redact"
)

// startupPingTimeout bounds the connectivity check made when the database is
// opened.
const startupPingTimeout = 3 * time.Second

// application holds the long-lived dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	app    *app.App
}

// newApplication wires the HTTP stack. A database is opened only when
// database.url is set; it then backs the readiness endpoint. An unreachable
// database is logged but does not stop startup.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	a := &application{config: cfg, logger: logger}

	opts := []app.Option{app.WithRoutes(userRoutes)}

	if cfg.Database.URL != "" {
		db, err := postgres.Open(cfg.Database.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}
		a.db = db

		if err := postgres.Ping(ctx, db, startupPingTimeout); err != nil {
			logger.Warn("database is not reachable yet",
				slog.String("error", redact.Error(err)),
				slog.Bool("required", cfg.Database.Required))
		} else {
			logger.Info("database connection established")
		}

		opts = append(opts, app.WithReadinessCheck(postgres.ReadinessCheck(db, cfg.Database.Required)))
		logger.Info("database readiness check enabled", slog.Bool("required", cfg.Database.Required))
	}

	a.app = app.New(cfg, logger, opts...)
	return a, nil
}

// cleanup releases resources after the server has stopped.
func (a *application) cleanup() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("error closing database connection", "error", err)
		}
	}
	a.logger.Info("application shutdown completed")
}
