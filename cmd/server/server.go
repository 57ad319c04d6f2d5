package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func (a *application) serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return a.serveListener(ctx, ln)
}

func (a *application) serveListener(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           a.app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var shutdownErr error

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(context.Context) error {
		a.logger.Info("starting server", "addr", ln.Addr().String())
		return server.Serve(ln)
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		a.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server shutdown failed", "error", err)
			shutdownErr = err
		}
		return nil
	})

	err := p.Wait()
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	a.logger.Info("server shutdown completed")
	return nil
}
