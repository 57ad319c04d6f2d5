package shared

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is the type of keys this package stores in a request context.
type ContextKey string

const (
	// UIDKey is the context key of the request correlation id.
	UIDKey ContextKey = "uid"
)

// SetUID stores a freshly generated correlation id in the context.
func SetUID(ctx context.Context) context.Context {
	return context.WithValue(ctx, UIDKey, generateUID())
}

// WithUIDValue stores the given correlation id in the context.
func WithUIDValue(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UIDKey, uid)
}

// GetUID returns the correlation id stored in the context, or "".
func GetUID(ctx context.Context) string {
	uid, ok := ctx.Value(UIDKey).(string)
	if !ok {
		return ""
	}
	return uid
}

// generateUID returns a random (v4) UUID. If the random source fails it
// falls back to a time-based (v1) UUID so an id is always produced.
func generateUID() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}

	slog.Error("failed to generate random correlation id",
		"error", err,
		"fallback", "time-based uuid")

	id, err = uuid.NewUUID()
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}
