package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/platform/logger"
)

// getPathUUID extracts a UUID from the URL path parameters.
//
// A missing parameter yields the 400 from shared.ResolveArg; a value that is
// not a UUID yields a 400 naming the parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw, err := shared.ResolveArg(r, paramName)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContext(r.Context()).DebugContext(r.Context(), "invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", raw))
		return uuid.Nil, shared.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Argument `%s` must be a UUID.", paramName), err)
	}

	return id, nil
}
