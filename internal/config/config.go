package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Schema   SchemaConfig   `mapstructure:"schema" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// TrailingSlash is "strip" to route /users/ as /users, or "redirect" to
	// answer with a 301 to the canonical path.
	TrailingSlash string `mapstructure:"trailing_slash" validate:"oneof=strip redirect"`
}

// AppConfig controls application identity and error reporting.
type AppConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	Env  string `mapstructure:"env" validate:"oneof=development testing staging production"`
	// DisplayErrorDetails exposes internal error messages in responses.
	DisplayErrorDetails bool `mapstructure:"display_error_details"`
	LogErrors           bool `mapstructure:"log_errors"`
	// LogErrorDetails logs raw error messages instead of redacted ones.
	LogErrorDetails bool `mapstructure:"log_error_details"`
}

// SchemaConfig locates the JSON schemas used for request validation.
type SchemaConfig struct {
	Folder       string `mapstructure:"folder" validate:"required,dir"`
	Prefix       string `mapstructure:"prefix" validate:"omitempty,url"`
	MaxErrors    int    `mapstructure:"max_errors" validate:"gt=0"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" validate:"gt=0"`
}

// CORSConfig contains cross-origin settings.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig is optional; a URL enables the database readiness check.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
	// Required makes an unreachable database fail readiness instead of
	// degrading it.
	Required bool `mapstructure:"required"`
}
