package health

import (
	"context"
	"os"
	"sync"
)

// Check is a readiness probe for one dependency.
type Check interface {
	// Name identifies the component in the readiness report.
	Name() string
	// Required reports whether a failure makes the service unhealthy
	// rather than degraded.
	Required() bool
	// Ready probes the component. Details are reported verbatim and may be nil.
	Ready(ctx context.Context) (ready bool, details map[string]any)
}

type funcCheck struct {
	name     string
	required bool
	fn       func(context.Context) (bool, map[string]any)
}

// NewCheck adapts fn to a Check.
func NewCheck(name string, required bool, fn func(context.Context) (bool, map[string]any)) Check {
	return funcCheck{name: name, required: required, fn: fn}
}

func (c funcCheck) Name() string   { return c.name }
func (c funcCheck) Required() bool { return c.required }

func (c funcCheck) Ready(ctx context.Context) (bool, map[string]any) {
	return c.fn(ctx)
}

// Registry holds the readiness checks in registration order.
type Registry struct {
	mu     sync.RWMutex
	checks []Check
}

// NewRegistry creates a registry holding checks.
func NewRegistry(checks ...Check) *Registry {
	return &Registry{checks: append([]Check(nil), checks...)}
}

// Register adds a check.
func (r *Registry) Register(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, c)
}

// All returns a snapshot of the registered checks.
func (r *Registry) All() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Check(nil), r.checks...)
}

// SchemaFolderCheck is a required check that the schema folder is a
// readable directory.
func SchemaFolderCheck(folder string) Check {
	return NewCheck("schemas", true, func(context.Context) (bool, map[string]any) {
		info, err := os.Stat(folder)
		if err != nil {
			return false, map[string]any{"error": "schema folder is not accessible"}
		}
		if !info.IsDir() {
			return false, map[string]any{"error": "schema folder is not a directory"}
		}

		entries, err := os.ReadDir(folder)
		if err != nil {
			return false, map[string]any{"error": "schema folder cannot be listed"}
		}
		return true, map[string]any{"entries": len(entries)}
	})
}
