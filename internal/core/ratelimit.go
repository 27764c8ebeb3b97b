package core

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimitError signals a client-side admission rejection. It is distinct
// from remote API errors: the request never left the process.
type RateLimitError struct {
	ClientID string
	Wait     time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %q, retry in %ds", e.ClientID, secondsCeil(e.Wait))
}

// WaitSeconds returns the wait rounded up to whole seconds, so a caller that
// sleeps that long always lands in a fresh window.
func (e *RateLimitError) WaitSeconds() int {
	return secondsCeil(e.Wait)
}

// rateLimitEntry captures per-client fixed-window state. Each entry carries
// its own lock so unrelated clients never contend.
type rateLimitEntry struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// RateLimiter enforces a fixed-window request limit per client identifier.
// Absence of an entry is treated as zero usage, so the first call for any
// identifier is always admitted.
type RateLimiter struct {
	limit  int
	window time.Duration

	// Clock is injectable for tests. Defaults to time.Now in UTC.
	Clock func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

// NewRateLimiter returns a limiter admitting at most limit requests per
// window for each client identifier.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*rateLimitEntry),
	}
}

// Allow reports whether a request for clientID may proceed. Admitted calls
// increment the window counter; rejected calls leave it at the cap.
func (r *RateLimiter) Allow(clientID string) bool {
	ok, _ := r.check(clientID)
	return ok
}

// Wait returns how long clientID must wait for the active window to expire.
// Zero means the next call would be admitted.
func (r *RateLimiter) Wait(clientID string) time.Duration {
	_, wait := r.peek(clientID)
	return wait
}

// SecondsUntilReset returns Wait rounded up to whole seconds.
func (r *RateLimiter) SecondsUntilReset(clientID string) int {
	return secondsCeil(r.Wait(clientID))
}

// Err returns a RateLimitError carrying the current wait for clientID.
func (r *RateLimiter) Err(clientID string) *RateLimitError {
	return &RateLimitError{ClientID: clientID, Wait: r.Wait(clientID)}
}

// Limit returns the configured per-window cap.
func (r *RateLimiter) Limit() int {
	return r.limit
}

// Window returns the configured window duration.
func (r *RateLimiter) Window() time.Duration {
	return r.window
}

func (r *RateLimiter) check(clientID string) (bool, time.Duration) {
	entry := r.entry(clientID)
	now := r.now()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.Sub(entry.windowStart) >= r.window {
		entry.count = 0
		entry.windowStart = now
	}

	if entry.count >= r.limit {
		return false, entry.windowStart.Add(r.window).Sub(now)
	}

	entry.count++
	return true, 0
}

func (r *RateLimiter) peek(clientID string) (bool, time.Duration) {
	entry := r.entry(clientID)
	now := r.now()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.Sub(entry.windowStart) >= r.window {
		return true, 0
	}
	if entry.count < r.limit {
		return true, 0
	}
	return false, entry.windowStart.Add(r.window).Sub(now)
}

func (r *RateLimiter) entry(clientID string) *rateLimitEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[clientID]
	if !ok {
		entry = &rateLimitEntry{windowStart: r.now()}
		r.entries[clientID] = entry
	}
	return entry
}

func (r *RateLimiter) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now().UTC()
}

func secondsCeil(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
