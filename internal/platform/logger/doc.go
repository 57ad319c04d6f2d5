// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Records logged with a request context carry
// that request's correlation id as the "uid" attribute.
package logger
