package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/szabmik/slim/internal/api"
	"github.com/szabmik/slim/internal/api/health"
	"github.com/szabmik/slim/internal/api/middleware"
	"github.com/szabmik/slim/internal/config"
	"github.com/szabmik/slim/internal/schema"
)

// Toolkit is handed to route registration functions.
type Toolkit struct {
	Errors     *api.ErrorHandler
	Validation *middleware.SchemaValidation
	Logger     *slog.Logger
}

// Require returns middleware validating the request against the given
// directives, in order.
func (tk *Toolkit) Require(directives ...middleware.Directive) func(http.Handler) http.Handler {
	return tk.Validation.Require(directives...)
}

// App is a composed HTTP application.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	toolkit  *Toolkit
	registry *health.Registry
	routes   []func(chi.Router, *Toolkit)
	resolver middleware.SchemaResolver

	handler http.Handler
}

// Option configures an App.
type Option func(*App)

// WithRoutes registers application routes. Functions run in the order they
// were given, after the status endpoints are mounted.
func WithRoutes(fn func(chi.Router, *Toolkit)) Option {
	return func(a *App) {
		if fn != nil {
			a.routes = append(a.routes, fn)
		}
	}
}

// WithReadinessCheck adds a probe to the readiness endpoint.
func WithReadinessCheck(c health.Check) Option {
	return func(a *App) {
		if c != nil {
			a.registry.Register(c)
		}
	}
}

// WithSchemaResolver replaces the file resolver rooted at the configured
// schema folder.
func WithSchemaResolver(r middleware.SchemaResolver) Option {
	return func(a *App) {
		if r != nil {
			a.resolver = r
		}
	}
}

// New builds the application. The schema folder is always probed by the
// readiness endpoint.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *App {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		registry: health.NewRegistry(health.SchemaFolderCheck(cfg.Schema.Folder)),
		resolver: schema.NewFileResolver(cfg.Schema.Folder),
	}
	for _, opt := range opts {
		opt(a)
	}

	errorHandler := &api.ErrorHandler{
		DisplayErrorDetails: cfg.App.DisplayErrorDetails,
		LogErrors:           cfg.App.LogErrors,
		LogErrorDetails:     cfg.App.LogErrorDetails,
		Logger:              logger,
	}

	validatorOpts := []schema.Option{schema.WithMaxErrors(cfg.Schema.MaxErrors)}
	if cfg.Schema.Prefix != "" {
		validatorOpts = append(validatorOpts, schema.WithPrefix(cfg.Schema.Prefix))
	}

	a.toolkit = &Toolkit{
		Errors: errorHandler,
		Validation: middleware.NewSchemaValidation(
			a.resolver,
			schema.NewValidator(cfg.Schema.Folder, validatorOpts...),
			middleware.WithErrorHandler(errorHandler),
			middleware.WithMaxBodyBytes(cfg.Schema.MaxBodyBytes),
		),
		Logger: logger,
	}

	a.handler = a.router()
	return a
}

func (a *App) router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID(a.logger))
	r.Use(middleware.RequestLogger)
	r.Use(api.Recoverer(a.toolkit.Errors))
	r.Use(middleware.TrailingSlash(a.cfg.Server.TrailingSlash))
	if a.cfg.CORS.Enabled {
		r.Use(middleware.CORS(a.cfg.CORS.AllowedOrigins))
		r.Use(chimw.NoCache)
	}

	r.NotFound(api.NotFoundHandler(a.toolkit.Errors))
	r.MethodNotAllowed(api.MethodNotAllowedHandler(a.toolkit.Errors))

	health.NewHandler(a.registry).Routes(r)

	for _, fn := range a.routes {
		fn(r, a.toolkit)
	}

	a.logger.Debug("router configured",
		slog.Int("route_groups", len(a.routes)),
		slog.Int("readiness_checks", len(a.registry.All())),
		slog.Bool("cors", a.cfg.CORS.Enabled),
		slog.String("trailing_slash", a.cfg.Server.TrailingSlash))

	return r
}

// Handler returns the root http.Handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Toolkit returns the helpers shared with route registration.
func (a *App) Toolkit() *Toolkit {
	return a.toolkit
}
