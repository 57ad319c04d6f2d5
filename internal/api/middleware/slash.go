package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// TrailingSlash returns the chi middleware for the configured mode:
// "redirect" answers /users/ with a 301 to /users, anything else routes
// /users/ as /users.
func TrailingSlash(mode string) func(http.Handler) http.Handler {
	if mode == "redirect" {
		return chimw.RedirectSlashes
	}
	return chimw.StripSlashes
}
