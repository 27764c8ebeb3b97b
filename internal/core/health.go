package core

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/swaplens/swaplens/internal/metrics"
)

// Health status labels used in snapshots and HTTP responses.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Probe is a single health check on one dependency or subsystem.
type Probe interface {
	Name() string
	Check(ctx context.Context) error
}

// ProbeFunc adapts a function into a Probe.
type ProbeFunc struct {
	ProbeName string
	Fn        func(ctx context.Context) error
}

func (p ProbeFunc) Name() string { return p.ProbeName }

func (p ProbeFunc) Check(ctx context.Context) error { return p.Fn(ctx) }

// Snapshot is the result of one aggregate health evaluation. Every field is
// refreshed from live state at check time, never cached across checks.
type Snapshot struct {
	Status         string            `json:"status"`
	Checks         map[string]string `json:"checks,omitempty"`
	Uptime         string            `json:"uptime"`
	TotalRequests  int64             `json:"total_requests"`
	FailedRequests int64             `json:"failed_requests"`
	FailureRate    float64           `json:"failure_rate"`
	ActiveConns    int64             `json:"active_connections"`
	Goroutines     int               `json:"goroutines,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Healthy reports whether the snapshot status is up.
func (s Snapshot) Healthy() bool { return s.Status == StatusUp }

// Aggregator computes readiness and liveness from independent probes plus a
// running failure-rate threshold. Probes are evaluated independently: an
// error or panic in one probe is recorded as that probe being down and never
// aborts the others.
type Aggregator struct {
	probes []Probe

	// FailureRateThreshold marks the aggregate down when the lifetime
	// failure ratio reaches it. Defaults to 0.25.
	FailureRateThreshold float64

	// MaxGoroutines bounds the liveness goroutine check. Defaults to 10000.
	MaxGoroutines int

	app   *metrics.App
	clock func() time.Time
}

// NewAggregator returns an aggregator reading request counters from app.
func NewAggregator(app *metrics.App) *Aggregator {
	return &Aggregator{
		FailureRateThreshold: 0.25,
		MaxGoroutines:        10000,
		app:                  app,
		clock:                func() time.Time { return time.Now().UTC() },
	}
}

// Register adds a readiness probe. Not safe for use after serving starts.
func (a *Aggregator) Register(p Probe) {
	if p == nil {
		return
	}
	a.probes = append(a.probes, p)
}

// RegisterFunc adds a readiness probe from a bare function.
func (a *Aggregator) RegisterFunc(name string, fn func(ctx context.Context) error) {
	a.Register(ProbeFunc{ProbeName: name, Fn: fn})
}

// Check evaluates all probes plus the failure-rate threshold and returns the
// aggregate readiness snapshot.
func (a *Aggregator) Check(ctx context.Context) Snapshot {
	snap := a.base()
	snap.Checks = make(map[string]string, len(a.probes)+1)

	down := false
	for _, probe := range a.probes {
		if err := a.runProbe(ctx, probe); err != nil {
			snap.Checks[probe.Name()] = "down: " + err.Error()
			down = true
		} else {
			snap.Checks[probe.Name()] = StatusUp
		}
	}

	if a.failureRateExceeded() {
		snap.Checks["failure_rate"] = fmt.Sprintf("down: %.2f >= %.2f", snap.FailureRate, a.FailureRateThreshold)
		down = true
	} else {
		snap.Checks["failure_rate"] = StatusUp
	}

	if down {
		snap.Status = StatusDown
	}
	return snap
}

// Liveness evaluates process-level health only. An orchestrator restarts on
// liveness failure, so dependency probes are deliberately excluded here.
func (a *Aggregator) Liveness(ctx context.Context) Snapshot {
	snap := a.base()
	snap.Checks = make(map[string]string, 1)
	snap.Goroutines = runtime.NumGoroutine()

	max := a.MaxGoroutines
	if max <= 0 {
		max = 10000
	}
	if snap.Goroutines > max {
		snap.Checks["goroutines"] = fmt.Sprintf("down: %d > %d", snap.Goroutines, max)
		snap.Status = StatusDown
	} else {
		snap.Checks["goroutines"] = StatusUp
	}
	return snap
}

// ProbeNames returns the registered probe names in sorted order.
func (a *Aggregator) ProbeNames() []string {
	names := make([]string, 0, len(a.probes))
	for _, p := range a.probes {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// runProbe contains probe failures: a panic inside a probe is converted to an
// error instead of propagating out of Check.
func (a *Aggregator) runProbe(ctx context.Context, probe Probe) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return probe.Check(ctx)
}

func (a *Aggregator) failureRateExceeded() bool {
	threshold := a.FailureRateThreshold
	if threshold <= 0 {
		threshold = 0.25
	}
	return a.app.FailureRate() >= threshold
}

func (a *Aggregator) base() Snapshot {
	return Snapshot{
		Status:         StatusUp,
		Uptime:         a.app.Uptime().Round(time.Second).String(),
		TotalRequests:  a.app.RequestsTotal(),
		FailedRequests: a.app.RequestsFailed(),
		FailureRate:    a.app.FailureRate(),
		ActiveConns:    a.app.ActiveConnections(),
		Timestamp:      a.clock(),
	}
}
