package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/platform/logger"
)

// CorrelationID stores a request correlation id in the context and echoes it
// in the response header. A valid UUID sent by the client in the
// X-Request-Id header is reused; anything else is replaced by a fresh one.
// The context also receives a logger derived from base (slog.Default() when
// nil) carrying the request method and path.
// This middleware should be applied early in the middleware chain so that
// every later handler and log record sees the id.
func CorrelationID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if inbound, err := uuid.Parse(r.Header.Get(chimw.RequestIDHeader)); err == nil {
				ctx = shared.WithUIDValue(ctx, inbound.String())
			} else {
				ctx = shared.SetUID(ctx)
			}

			uid := shared.GetUID(ctx)
			w.Header().Set(chimw.RequestIDHeader, uid)

			parent := base
			if parent == nil {
				parent = slog.Default()
			}
			// The uid itself is stamped by the logger's handler from ctx.
			log := parent.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			ctx = logger.WithLogger(ctx, log)

			log.DebugContext(ctx, "request started",
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
