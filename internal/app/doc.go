// Package app composes the HTTP stack: error handling, the middleware chain,
// schema validation, status endpoints and application routes.
//
// Routes are registered through WithRoutes. Each route opts into schema
// validation explicitly:
//
//	app.New(cfg, logger, app.WithRoutes(func(r chi.Router, tk *app.Toolkit) {
//		r.With(tk.Require(middleware.Body("CreateUser"))).Post("/users", h.CreateUser)
//	}))
package app
