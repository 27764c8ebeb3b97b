package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swaplens/swaplens/internal/metrics"
)

func TestAggregatorAllProbesUp(t *testing.T) {
	agg := NewAggregator(metrics.NewApp())
	agg.RegisterFunc("config", func(ctx context.Context) error { return nil })
	agg.RegisterFunc("client", func(ctx context.Context) error { return nil })

	snap := agg.Check(context.Background())

	require.Equal(t, StatusUp, snap.Status)
	require.True(t, snap.Healthy())
	require.Equal(t, StatusUp, snap.Checks["config"])
	require.Equal(t, StatusUp, snap.Checks["client"])
	require.Equal(t, StatusUp, snap.Checks["failure_rate"])
}

func TestAggregatorDownWhenAnyProbeFails(t *testing.T) {
	agg := NewAggregator(metrics.NewApp())
	agg.RegisterFunc("ok", func(ctx context.Context) error { return nil })
	agg.RegisterFunc("broken", func(ctx context.Context) error { return errors.New("no credentials") })

	snap := agg.Check(context.Background())

	require.Equal(t, StatusDown, snap.Status)
	require.Equal(t, StatusUp, snap.Checks["ok"])
	require.Contains(t, snap.Checks["broken"], "no credentials")
}

func TestAggregatorContainsProbePanic(t *testing.T) {
	agg := NewAggregator(metrics.NewApp())
	agg.RegisterFunc("panics", func(ctx context.Context) error { panic("boom") })
	agg.RegisterFunc("after", func(ctx context.Context) error { return nil })

	var snap Snapshot
	require.NotPanics(t, func() {
		snap = agg.Check(context.Background())
	})

	require.Equal(t, StatusDown, snap.Status)
	require.Contains(t, snap.Checks["panics"], "probe panicked")
	// The panicking probe must not abort the others.
	require.Equal(t, StatusUp, snap.Checks["after"])
}

func TestAggregatorFailureRateThreshold(t *testing.T) {
	app := metrics.NewApp()
	for i := 0; i < 3; i++ {
		app.RecordRequest(true)
	}
	app.RecordRequest(false) // 25% failure rate, at the default threshold

	agg := NewAggregator(app)

	snap := agg.Check(context.Background())
	require.Equal(t, StatusDown, snap.Status)
	require.Contains(t, snap.Checks["failure_rate"], "down")

	// Below the threshold the aggregate recovers.
	for i := 0; i < 10; i++ {
		app.RecordRequest(true)
	}
	snap = agg.Check(context.Background())
	require.Equal(t, StatusUp, snap.Status)
}

func TestAggregatorSnapshotReflectsLiveCounters(t *testing.T) {
	app := metrics.NewApp()
	agg := NewAggregator(app)

	snap := agg.Check(context.Background())
	require.Zero(t, snap.TotalRequests)

	app.RecordRequest(true)
	app.RecordRequest(false)
	app.ConnOpened()

	snap = agg.Check(context.Background())
	require.Equal(t, int64(2), snap.TotalRequests)
	require.Equal(t, int64(1), snap.FailedRequests)
	require.Equal(t, int64(1), snap.ActiveConns)
}

func TestLivenessIgnoresDependencyProbes(t *testing.T) {
	agg := NewAggregator(metrics.NewApp())
	agg.RegisterFunc("dependency", func(ctx context.Context) error { return errors.New("down") })

	snap := agg.Liveness(context.Background())

	require.Equal(t, StatusUp, snap.Status)
	require.NotContains(t, snap.Checks, "dependency")
	require.Equal(t, StatusUp, snap.Checks["goroutines"])
	require.Positive(t, snap.Goroutines)
}
