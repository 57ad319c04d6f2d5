package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/szabmik/slim/internal/api"
	"github.com/szabmik/slim/internal/api/middleware"
	"github.com/szabmik/slim/internal/app"
)

// userRoutes registers the example user API. Request shapes are checked by
// the RequestBody/CreateUser and QueryParameters/ListUsers schemas.
func userRoutes(r chi.Router, tk *app.Toolkit) {
	users := api.NewUserHandler(tk.Errors)

	r.Route("/users", func(r chi.Router) {
		r.With(tk.Require(middleware.Body("CreateUser"))).Post("/", users.CreateUser)
		r.With(tk.Require(middleware.Query("ListUsers"))).Get("/", users.ListUsers)
		r.Get("/{id}", users.GetUser)
	})
}
