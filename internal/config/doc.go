// Package config loads server settings from an optional YAML file and
// SLIM_-prefixed environment variables, applies defaults and validates the
// result before the server starts.
package config
