package logger

import (
	"context"
	"log/slog"
)

// UIDKey is the attribute name of the request correlation id.
const UIDKey = "uid"

// UIDHandler is a slog.Handler that adds the request correlation id found
// in the record's context.
type UIDHandler struct {
	handler slog.Handler
	uid     func(context.Context) string
}

// NewUIDHandler wraps handler. uid extracts the correlation id from a
// context and returns "" when there is none.
func NewUIDHandler(handler slog.Handler, uid func(context.Context) string) *UIDHandler {
	return &UIDHandler{handler: handler, uid: uid}
}

// Enabled implements the slog.Handler interface.
func (h *UIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *UIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &UIDHandler{handler: h.handler.WithAttrs(attrs), uid: h.uid}
}

// WithGroup implements the slog.Handler interface.
func (h *UIDHandler) WithGroup(name string) slog.Handler {
	return &UIDHandler{handler: h.handler.WithGroup(name), uid: h.uid}
}

// Handle implements the slog.Handler interface.
func (h *UIDHandler) Handle(ctx context.Context, record slog.Record) error {
	if ctx != nil {
		if uid := h.uid(ctx); uid != "" {
			record = record.Clone()
			record.AddAttrs(slog.String(UIDKey, uid))
		}
	}
	return h.handler.Handle(ctx, record)
}
