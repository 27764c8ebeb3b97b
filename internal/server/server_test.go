package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/metrics"
	"github.com/swaplens/swaplens/internal/server/handlers"
)

func newTestServer(t *testing.T, agg *core.Aggregator, limiter *core.RateLimiter) *Server {
	t.Helper()
	app := metrics.NewApp()
	if agg == nil {
		agg = core.NewAggregator(app)
	}
	return New(Options{
		Host:       "127.0.0.1",
		Port:       0,
		Version:    handlers.VersionInfo{Version: "1.2.3", Commit: "abc", BuildDate: "today"},
		Aggregator: agg,
		Limiter:    limiter,
		Metrics:    app,
	})
}

func TestHealthEndpointHealthy(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, core.StatusUp, resp.Status)
	require.Equal(t, "1.2.3", resp.Version)
}

func TestReadinessReflectsProbeFailure(t *testing.T) {
	app := metrics.NewApp()
	agg := core.NewAggregator(app)
	agg.RegisterFunc("upstream", func(ctx context.Context) error { return errors.New("unreachable") })

	srv := newTestServer(t, agg, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Liveness stays up: the process itself is fine.
	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestVersionEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var info handlers.VersionInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	require.Equal(t, "abc", info.Commit)
}

func TestNotFoundUsesEnvelope(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	limiter := core.NewRateLimiter(2, time.Minute)
	srv := newTestServer(t, nil, limiter)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRateLimitKeyedByHostNotPort(t *testing.T) {
	limiter := core.NewRateLimiter(1, time.Minute)
	srv := newTestServer(t, nil, limiter)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.RemoteAddr = "10.0.0.1:40001"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Reconnecting from a new source port shares the same window.
	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	req.RemoteAddr = "10.0.0.1:40002"
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different host is unaffected.
	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	req.RemoteAddr = "10.0.0.2:40001"
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestConnStateFeedsActiveConnectionGauge(t *testing.T) {
	app := metrics.NewApp()
	track := trackConnState(app)

	track(nil, http.StateNew)
	track(nil, http.StateNew)
	require.Equal(t, int64(2), app.ActiveConnections())

	track(nil, http.StateClosed)
	require.Equal(t, int64(1), app.ActiveConnections())

	track(nil, http.StateHijacked)
	require.Equal(t, int64(0), app.ActiveConnections())

	// Intermediate states leave the gauge alone.
	track(nil, http.StateActive)
	track(nil, http.StateIdle)
	require.Equal(t, int64(0), app.ActiveConnections())
}

func TestRequestIDEchoedOnResponse(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}
