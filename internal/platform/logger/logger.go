package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/szabmik/slim/internal/config"
)

// Option customizes Setup.
type Option func(*options)

type options struct {
	out io.Writer
	uid func(context.Context) string
}

// WithOutput redirects log output, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithUIDFunc stamps the value returned by fn as "uid" on every record
// logged with a context.
func WithUIDFunc(fn func(context.Context) string) Option {
	return func(o *options) {
		o.uid = fn
	}
}

// ParseLevel maps a configured level name to a slog level. The second
// result is false for unknown names, which map to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
func Setup(cfg config.ServerConfig, opts ...Option) (*slog.Logger, error) {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		// Create a temporary logger to output the warning
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	var handler slog.Handler = slog.NewJSONHandler(o.out, &slog.HandlerOptions{Level: level})
	if o.uid != nil {
		handler = NewUIDHandler(handler, o.uid)
	}

	logger := slog.New(handler)

	// Set this logger as the default for the application
	// This allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger, nil
}
