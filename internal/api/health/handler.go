package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/platform/logger"
)

// Status is the overall or per-component state in a status report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// DefaultCheckTimeout bounds how long Readiness waits for each check.
const DefaultCheckTimeout = 2 * time.Second

// Component is one entry of the readiness report.
type Component struct {
	Status   Status         `json:"status"`
	Required bool           `json:"required"`
	Details  map[string]any `json:"details"`
}

// Report is the readiness response data.
type Report struct {
	Status     Status               `json:"status"`
	CheckedAt  string               `json:"checked_at"`
	Components map[string]Component `json:"components"`
}

// Handler serves the status endpoints.
type Handler struct {
	registry *Registry
	timeout  time.Duration
	now      func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithCheckTimeout overrides DefaultCheckTimeout.
func WithCheckTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler creates the status handler. A nil registry means no checks.
func NewHandler(registry *Registry, opts ...Option) *Handler {
	if registry == nil {
		registry = NewRegistry()
	}
	h := &Handler{registry: registry, timeout: DefaultCheckTimeout, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts /health, /liveness and /readiness on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/liveness", h.Liveness)
	r.Get("/readiness", h.Readiness)
}

// Health reports that the process is serving requests.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	shared.RespondWithData(w, r, http.StatusOK, map[string]any{
		"status":    StatusHealthy,
		"timestamp": h.now().Format(time.RFC3339),
	})
}

// Liveness answers 204 with no body.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithoutData(w, r, http.StatusNoContent)
}

// Readiness runs every registered check. It answers 503 when a required
// check fails and 200 otherwise.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	report := h.Check(r.Context())

	status := http.StatusOK
	if report.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
		logger.FromContext(r.Context()).WarnContext(r.Context(), "readiness check failed", "components", failing(report))
	}

	w.Header().Set("Cache-Control", "no-store")
	shared.RespondWithData(w, r, status, report)
}

// Check runs the registered checks concurrently and aggregates their
// outcome.
func (h *Handler) Check(ctx context.Context) Report {
	report := Report{
		Status:     StatusHealthy,
		CheckedAt:  h.now().Format(time.RFC3339),
		Components: make(map[string]Component),
	}

	checks := h.registry.All()
	outcomes := make([]outcome, len(checks))

	p := pool.New()
	for i, c := range checks {
		i, c := i, c
		p.Go(func() {
			outcomes[i].ready, outcomes[i].details = h.run(ctx, c)
		})
	}
	p.Wait()

	for i, c := range checks {
		comp := Component{Status: StatusHealthy, Required: c.Required(), Details: outcomes[i].details}
		if comp.Details == nil {
			comp.Details = map[string]any{}
		}

		if !outcomes[i].ready {
			comp.Status = StatusUnhealthy
			switch {
			case c.Required():
				report.Status = StatusUnhealthy
			case report.Status == StatusHealthy:
				report.Status = StatusDegraded
			}
		}
		report.Components[c.Name()] = comp
	}

	return report
}

type outcome struct {
	ready   bool
	details map[string]any
}

// run calls the check with a timeout. A check that is still running when
// the timeout fires, or that panics, is reported as not ready; a late result
// is discarded.
func (h *Handler) run(ctx context.Context, c Check) (bool, map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		var o outcome
		if rec := panics.Try(func() { o.ready, o.details = c.Ready(ctx) }); rec != nil {
			logger.FromContext(ctx).ErrorContext(ctx, "readiness check panicked", "check", c.Name(), "panic", rec.Value)
			o = outcome{details: map[string]any{"error": "check panicked"}}
		}
		done <- o
	}()

	select {
	case o := <-done:
		return o.ready, o.details
	case <-ctx.Done():
		logger.FromContext(ctx).WarnContext(ctx, "readiness check timed out", "check", c.Name(), "timeout", h.timeout)
		return false, map[string]any{"error": "check timed out"}
	}
}

func failing(r Report) []string {
	var names []string
	for name, c := range r.Components {
		if c.Status != StatusHealthy {
			names = append(names, name)
		}
	}
	return names
}
