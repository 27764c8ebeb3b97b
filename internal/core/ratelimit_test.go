package core

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterAdmitsWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow("client"), "call %d should be admitted", i+1)
	}
	require.False(t, limiter.Allow("client"))
}

func TestRateLimiterScenario(t *testing.T) {
	// limit=5 per 60s: calls 1-5 admitted, call 6 rejected with wait <= 60s,
	// call 7 after 61s admitted with the counter reset to 1.
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(5, 60*time.Second)
	limiter.Clock = func() time.Time { return clock }

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("x"), "call %d", i+1)
	}

	require.False(t, limiter.Allow("x"))
	wait := limiter.SecondsUntilReset("x")
	require.Greater(t, wait, 0)
	require.LessOrEqual(t, wait, 60)

	clock = clock.Add(61 * time.Second)
	require.True(t, limiter.Allow("x"))

	// Counter reset to 1: four more calls fit in the fresh window.
	for i := 0; i < 4; i++ {
		require.True(t, limiter.Allow("x"), "post-reset call %d", i+2)
	}
	require.False(t, limiter.Allow("x"))
}

func TestRateLimiterFirstCallAlwaysAdmitted(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)

	require.True(t, limiter.Allow("fresh"))
	require.Zero(t, limiter.SecondsUntilReset("never-seen"))
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	require.True(t, limiter.Allow("a"))
	require.False(t, limiter.Allow("a"))
	require.True(t, limiter.Allow("b"))
}

func TestRateLimiterErrCarriesWait(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 30*time.Second)
	limiter.Clock = func() time.Time { return clock }

	require.True(t, limiter.Allow("c"))
	require.False(t, limiter.Allow("c"))

	err := limiter.Err("c")
	require.Equal(t, "c", err.ClientID)
	require.Equal(t, 30, err.WaitSeconds())
	require.Contains(t, err.Error(), "rate limit exceeded")
}

func TestRateLimiterConcurrentAdmission(t *testing.T) {
	const limit = 8
	const callers = 64

	limiter := NewRateLimiter(limit, time.Minute)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if limiter.Allow("shared") {
				admitted.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	require.Equal(t, int64(limit), admitted.Load())
}

func TestRateLimiterWaitZeroWhenWindowExpired(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Clock = func() time.Time { return clock }

	require.True(t, limiter.Allow("d"))
	require.False(t, limiter.Allow("d"))

	clock = clock.Add(2 * time.Minute)
	require.Zero(t, limiter.Wait("d"))
	require.True(t, limiter.Allow("d"))
}
