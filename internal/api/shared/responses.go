package shared

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
)

// fallbackBody is written when a payload cannot be encoded.
const fallbackBody = `{"errors":[{"type":"SERVER_ERROR","description":"Failed to encode response.","uid":null}]}`

// RespondWithJSON writes v as a JSON response with the given status code.
// Statuses that forbid a body (204, 304) only write the header.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")

	if !bodyAllowed(status) {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to encode JSON response",
			"error", err,
			"status_code", status,
			"path", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallbackBody))
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.DebugContext(r.Context(), "failed to write JSON response", "error", err)
	}
}

// RespondWithPayload writes the payload using its own status code.
func RespondWithPayload(w http.ResponseWriter, r *http.Request, p Payload) {
	RespondWithJSON(w, r, p.StatusCode(), p)
}

// RespondWithData writes a success payload wrapping data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithPayload(w, r, NewPayload(status, WithData(data)))
}

// RespondWithoutData writes an empty payload, typically with 204 No Content.
func RespondWithoutData(w http.ResponseWriter, r *http.Request, status int) {
	RespondWithPayload(w, r, NewPayload(status))
}

// RespondWithErrors writes an error payload. The request's correlation id is
// attached to every error.
func RespondWithErrors(w http.ResponseWriter, r *http.Request, status int, errs ...ErrorItem) {
	uid := GetUID(r.Context())

	slog.DebugContext(r.Context(), "sending error response",
		"status_code", status,
		"error_count", len(errs),
		"uid", uid,
		"path", r.URL.Path,
		"method", r.Method)

	if errs == nil {
		errs = []ErrorItem{}
	}
	RespondWithPayload(w, r, NewPayload(status, WithErrors(AttachUID(errs, uid))))
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
