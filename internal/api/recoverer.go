package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/platform/logger"
)

const panicMessage = "An error while processing your request. Please try again later."

// Recoverer turns a panic in a later handler into a 500 response rendered
// by h. The panic value is shown to the client only when h displays error
// details; the stack is always logged. http.ErrAbortHandler is re-panicked
// so the server can abort the connection.
func Recoverer(h *ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.FromContext(r.Context()).ErrorContext(r.Context(), "recovered from panic",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))

				message := panicMessage
				if h.DisplayErrorDetails {
					message = fmt.Sprintf("FATAL ERROR: %v.", rec)
				}

				cause, _ := rec.(error)
				h.HandleError(w, r, shared.InternalServerError(message, cause))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
