// Package main runs the slim example server: a small user API whose
// requests are validated against the JSON schemas in the configured folder.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/config"
	"github.com/szabmik/slim/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("server terminated: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server, logger.WithOutput(os.Stdout), logger.WithUIDFunc(shared.GetUID))
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("env", cfg.App.Env),
		slog.String("schema_folder", cfg.Schema.Folder))

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.serve(ctx)
}
