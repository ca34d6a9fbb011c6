// Package health provides Kubernetes-style liveness and readiness probes.
// Checks run on demand when a probe endpoint is hit, each bounded by a
// timeout.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc reports the health of one component: nil when healthy, an
// error describing the problem otherwise.
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name    string
	timeout time.Duration
	check   CheckFunc
}

// Health manages liveness and readiness probes for a service.
type Health struct {
	ready atomic.Bool

	mu              sync.RWMutex
	livenessChecks  []namedCheck
	readinessChecks []namedCheck
}

// New creates a Health instance. The service starts not ready; call
// SetReady(true) once initialization completes.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a liveness check. Liveness asks "is the
// process functioning", e.g. goroutine leak detection.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.livenessChecks = append(h.livenessChecks, namedCheck{name: name, timeout: timeout, check: check})
}

// AddReadinessCheck registers a readiness check. Readiness asks "can the
// service take traffic", e.g. database connectivity.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readinessChecks = append(h.readinessChecks, namedCheck{name: name, timeout: timeout, check: check})
}

// SetReady flips the manual readiness gate. Set false during graceful
// shutdown to drain traffic before the listener closes.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service has been marked ready and all
// readiness checks pass.
func (h *Health) IsReady(ctx context.Context) bool {
	if !h.ready.Load() {
		return false
	}
	h.mu.RLock()
	checks := h.readinessChecks
	h.mu.RUnlock()
	return len(runChecks(ctx, checks)) == 0
}

// LiveEndpoint serves the /livez probe: 200 when every liveness check
// passes, 503 with per-check failures otherwise.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := h.livenessChecks
	h.mu.RUnlock()

	writeStatus(w, runChecks(r.Context(), checks))
}

// ReadyEndpoint serves the /readyz probe: 200 when the service is marked
// ready and every readiness check passes.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := h.readinessChecks
	h.mu.RUnlock()

	failures := runChecks(r.Context(), checks)
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	writeStatus(w, failures)
}

func runChecks(ctx context.Context, checks []namedCheck) map[string]string {
	failures := make(map[string]string)
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.check(checkCtx)
		cancel()
		if err != nil {
			failures[c.name] = err.Error()
		}
	}
	return failures
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	status := http.StatusOK
	if len(failures) > 0 {
		resp.Status = "unhealthy"
		resp.Checks = failures
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
