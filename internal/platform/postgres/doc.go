// Package postgres opens an optional PostgreSQL connection pool through the
// pgx stdlib driver and exposes it as a readiness check.
package postgres
