package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// SLIM_SERVER_PORT for server.port.
const EnvPrefix = "SLIM"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.CORS.AllowedOrigins = allowedOrigins(cfg.CORS.AllowedOrigins)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.trailing_slash", "strip")

	v.SetDefault("app.name", "slim")
	v.SetDefault("app.env", "production")
	v.SetDefault("app.display_error_details", false)
	v.SetDefault("app.log_errors", true)
	v.SetDefault("app.log_error_details", false)

	v.SetDefault("schema.folder", "")
	v.SetDefault("schema.prefix", "")
	v.SetDefault("schema.max_errors", 5)
	v.SetDefault("schema.max_body_bytes", 1<<20)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("database.url", "")
	v.SetDefault("database.required", false)
}

// allowedOrigins falls back to the comma separated ALLOWED_ORIGINS variable,
// then to "*".
func allowedOrigins(configured []string) []string {
	origins := trimAll(configured)
	if len(origins) > 0 {
		return origins
	}

	origins = trimAll(strings.Split(os.Getenv("ALLOWED_ORIGINS"), ","))
	if len(origins) > 0 {
		return origins
	}

	return []string{"*"}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
