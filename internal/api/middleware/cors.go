package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var (
	corsAllowedHeaders = []string{"X-Requested-With", "Content-Type", "Accept", "Origin", "Authorization"}
	corsAllowedMethods = []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
)

// CORS answers cross-origin requests from the allowed origins. A "*" entry
// allows any origin. Credentials are allowed, so the request's Origin is
// echoed back rather than "*". Preflight requests are answered with 204.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			if allowAll {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
		AllowedMethods:       corsAllowedMethods,
		AllowedHeaders:       corsAllowedHeaders,
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
