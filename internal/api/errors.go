package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/platform/logger"
	"github.com/szabmik/slim/internal/redact"
)

// genericErrorMessage is shown for faults that carry no HTTP status unless
// error details are displayed.
const genericErrorMessage = "An internal error has occurred while processing your request."

// ErrorHandler renders every error that escapes a handler or middleware as
// a JSON error payload.
type ErrorHandler struct {
	// DisplayErrorDetails exposes the messages of unexpected errors to clients.
	DisplayErrorDetails bool
	// LogErrors logs every handled error.
	LogErrors bool
	// LogErrorDetails logs raw error messages instead of redacted ones.
	LogErrorDetails bool
	// Logger is used when the request context carries no logger.
	Logger *slog.Logger
}

// HandleError writes the response for err. A *shared.HTTPError anywhere in
// the chain keeps its status and message; anything else becomes a 500.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	errType := shared.ErrorTypeServerError
	description := genericErrorMessage

	var httpErr *shared.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
		errType = httpErr.Type()
		description = httpErr.Message
	} else if h.DisplayErrorDetails && err != nil {
		description = err.Error()
	}

	if h.LogErrors {
		h.log(r, status, err)
	}

	shared.RespondWithErrors(w, r, status,
		shared.NewError(errType, shared.WithDescription(description)))
}

func (h *ErrorHandler) log(r *http.Request, status int, err error) {
	fallback := h.Logger
	if fallback == nil {
		fallback = slog.Default()
	}
	log := logger.FromContextOrDefault(r.Context(), fallback)

	message := redact.Error(err)
	if h.LogErrorDetails && err != nil {
		message = err.Error()
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	log.Log(r.Context(), level, "request failed",
		slog.Int("status_code", status),
		slog.String("error", message),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
}

// NotFoundHandler answers unmatched routes through h.
func NotFoundHandler(h *ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.HandleError(w, r, shared.NotFound("Not found."))
	}
}

// MethodNotAllowedHandler answers routes matched with the wrong method
// through h.
func MethodNotAllowedHandler(h *ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.HandleError(w, r, shared.MethodNotAllowed("Method not allowed."))
	}
}
