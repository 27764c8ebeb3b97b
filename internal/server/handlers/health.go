package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/swaplens/swaplens/internal/core"
	apperrors "github.com/swaplens/swaplens/internal/errors"
)

// Health serves the readiness and liveness endpoints backed by the injected
// aggregator.
type Health struct {
	agg     *core.Aggregator
	version string
}

// NewHealth returns the health handler set.
func NewHealth(agg *core.Aggregator, version string) *Health {
	return &Health{agg: agg, version: version}
}

// HealthResponse is the aggregate check response body.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Data    core.Snapshot `json:"data"`
}

// Aggregate handles GET /health: readiness probes plus failure rate.
func (h *Health) Aggregate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snap := h.agg.Check(ctx)
	h.respond(w, r, snap, "aggregate health check failed")
}

// Liveness handles GET /health/live: process-level checks only, so an
// orchestrator restarts the process exactly when the process itself is sick.
func (h *Health) Liveness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	snap := h.agg.Liveness(ctx)
	h.respond(w, r, snap, "liveness probe failed")
}

// Readiness handles GET /health/ready: dependency probes decide whether
// traffic should be routed here.
func (h *Health) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snap := h.agg.Check(ctx)
	h.respond(w, r, snap, "readiness probe failed")
}

func (h *Health) respond(w http.ResponseWriter, r *http.Request, snap core.Snapshot, failMsg string) {
	if !snap.Healthy() {
		envelope := apperrors.NewServiceUnavailableError(failMsg)
		envelope, _ = envelope.WithContext(map[string]interface{}{
			"status": snap.Status,
			"checks": snap.Checks,
		})
		apperrors.RespondWithError(w, r, envelope)
		return
	}

	response := HealthResponse{
		Status:  snap.Status,
		Version: h.version,
		Data:    snap,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}
