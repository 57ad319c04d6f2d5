// Package health serves the service status endpoints: /health for a cheap
// process check, /liveness for orchestrator probes and /readiness, which runs
// every registered Check and reports its outcome per component.
package health
