package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestTrailingSlash(t *testing.T) {
	newRouter := func(mode string) http.Handler {
		r := chi.NewRouter()
		r.Use(TrailingSlash(mode))
		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		return r
	}

	t.Run("strip", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter("strip").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redirect", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter("redirect").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/", nil))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.True(t, strings.HasSuffix(rec.Header().Get("Location"), "/users"), rec.Header().Get("Location"))
	})

	t.Run("root untouched", func(t *testing.T) {
		r := chi.NewRouter()
		r.Use(TrailingSlash("strip"))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
