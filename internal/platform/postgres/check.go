package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/szabmik/slim/internal/api/health"
)

// CheckName is the component name reported by ReadinessCheck.
const CheckName = "database"

// ReadinessCheck reports whether db answers a ping. A failing database
// degrades the service unless required is set.
func ReadinessCheck(db *sql.DB, required bool) health.Check {
	return health.NewCheck(CheckName, required, func(ctx context.Context) (bool, map[string]any) {
		start := time.Now()
		if err := db.PingContext(ctx); err != nil {
			return false, describe(err)
		}

		stats := db.Stats()
		return true, map[string]any{
			"latency_ms":       time.Since(start).Milliseconds(),
			"open_connections": stats.OpenConnections,
		}
	})
}

// describe turns a ping failure into details safe to expose on the
// readiness endpoint.
func describe(err error) map[string]any {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		return map[string]any{"error": "server rejected the connection", "sqlstate": pgErr.Code}
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return map[string]any{"error": "timed out"}
	default:
		return map[string]any{"error": "unreachable"}
	}
}
