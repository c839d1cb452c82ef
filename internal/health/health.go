// Package health provides the liveness and readiness probes for the Haven
// server.
//
//   - /healthz — liveness; always 200 while the process can serve HTTP.
//   - /readyz  — readiness; 200 only when every registered check passes.
//
// Responses are JSON objects with a top-level "status" field ("ok" or "fail")
// and a "checks" map with the per-check outcome.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/havenchat/haven/pkg/history"
	"github.com/havenchat/haven/pkg/sentiment"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 5 * time.Second

// Check is a named readiness probe. Probe returns nil when the dependency is
// healthy and must respect context cancellation.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// StoreCheck probes the history store with a cheap count query.
func StoreCheck(store history.Store) Check {
	return Check{
		Name: "history",
		Probe: func(ctx context.Context) error {
			_, err := store.ExchangeCount(ctx, "readyz-probe")
			return err
		},
	}
}

// ScorerCheck verifies the sentiment scorer can score a message.
func ScorerCheck(scorer sentiment.Scorer) Check {
	return Check{
		Name: "sentiment",
		Probe: func(context.Context) error {
			_, err := scorer.Score("ok")
			return err
		},
	}
}

// result is the JSON response body for both probes.
type result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves the probe endpoints. The check list is fixed at
// construction time; Handler is safe for concurrent use.
type Handler struct {
	checks []Check
}

// New creates a Handler that evaluates the given checks on each /readyz
// request, in order.
func New(checks ...Check) *Handler {
	c := make([]Check, len(checks))
	copy(c, checks)
	return &Handler{checks: c}
}

// Healthz always returns 200. A running process that can serve HTTP is alive.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, result{Status: "ok"})
}

// Readyz returns 200 only when every check passes. Each check runs with a
// [checkTimeout] deadline derived from the request context.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checks))
	allOK := true

	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Probe(ctx)
		cancel()

		if err != nil {
			checks[c.Name] = "fail: " + err.Error()
			allOK = false
		} else {
			checks[c.Name] = "ok"
		}
	}

	res := result{Status: "ok", Checks: checks}
	status := http.StatusOK
	if !allOK {
		res.Status = "fail"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}

// Register adds the /healthz and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// writeJSON encodes v as JSON with the given status code. On encoding
// failure it falls back to a plain-text 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
