// Package metrics tracks process-wide request counters consumed by the
// health aggregator and reported through the health endpoints.
package metrics

import (
	"sync/atomic"
	"time"
)

// App holds process-wide counters. It is constructed once at startup and
// injected into the components that record or read it.
type App struct {
	startTime time.Time

	requestsTotal     atomic.Int64
	requestsFailed    atomic.Int64
	activeConnections atomic.Int64
	panicsTotal       atomic.Int64

	rateLimitRejects atomic.Int64
}

// NewApp returns a metrics registry anchored at the current time.
func NewApp() *App {
	return &App{startTime: time.Now().UTC()}
}

// RecordRequest records one completed operation.
func (a *App) RecordRequest(success bool) {
	if a == nil {
		return
	}
	a.requestsTotal.Add(1)
	if !success {
		a.requestsFailed.Add(1)
	}
}

// RecordPanic records a recovered panic.
func (a *App) RecordPanic() {
	if a == nil {
		return
	}
	a.panicsTotal.Add(1)
}

// RecordRateLimitReject records one admission-control rejection.
func (a *App) RecordRateLimitReject() {
	if a == nil {
		return
	}
	a.rateLimitRejects.Add(1)
}

// ConnOpened increments the active connection gauge.
func (a *App) ConnOpened() {
	if a == nil {
		return
	}
	a.activeConnections.Add(1)
}

// ConnClosed decrements the active connection gauge.
func (a *App) ConnClosed() {
	if a == nil {
		return
	}
	a.activeConnections.Add(-1)
}

// Uptime returns time elapsed since construction.
func (a *App) Uptime() time.Duration {
	if a == nil {
		return 0
	}
	return time.Since(a.startTime)
}

// RequestsTotal returns the number of recorded operations.
func (a *App) RequestsTotal() int64 {
	if a == nil {
		return 0
	}
	return a.requestsTotal.Load()
}

// RequestsFailed returns the number of failed operations.
func (a *App) RequestsFailed() int64 {
	if a == nil {
		return 0
	}
	return a.requestsFailed.Load()
}

// ActiveConnections returns the current connection gauge value.
func (a *App) ActiveConnections() int64 {
	if a == nil {
		return 0
	}
	return a.activeConnections.Load()
}

// PanicsTotal returns the number of recovered panics.
func (a *App) PanicsTotal() int64 {
	if a == nil {
		return 0
	}
	return a.panicsTotal.Load()
}

// RateLimitRejects returns the number of admission rejections.
func (a *App) RateLimitRejects() int64 {
	if a == nil {
		return 0
	}
	return a.rateLimitRejects.Load()
}

// FailureRate returns failed/total over the process lifetime, zero when no
// requests have been recorded yet.
func (a *App) FailureRate() float64 {
	if a == nil {
		return 0
	}
	total := a.requestsTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(a.requestsFailed.Load()) / float64(total)
}
