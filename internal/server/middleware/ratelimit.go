package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/fulmenhq/gofulmen/errors"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/metrics"
)

// RateLimit returns middleware gating requests through the fixed-window
// limiter, keyed by remote host. The source port is stripped so a client
// cannot get a fresh window by reconnecting. Rejections answer 429 with a
// Retry-After header carrying the window reset time.
func RateLimit(limiter *core.RateLimiter, app *metrics.App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := clientKey(r)
			if limiter.Allow(clientID) {
				next.ServeHTTP(w, r)
				return
			}

			app.RecordRateLimitReject()
			rlErr := limiter.Err(clientID)

			envelope := errors.NewErrorEnvelope("RATE_LIMITED", rlErr.Error()).
				WithCorrelationID(GetRequestID(r.Context()))
			envelope, _ = envelope.WithContext(map[string]interface{}{
				"wait_seconds": rlErr.WaitSeconds(),
			})

			w.Header().Set("Retry-After", strconv.Itoa(rlErr.WaitSeconds()))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(ErrorResponse{
				Error: ErrorDetail{
					Code:      envelope.Code,
					Message:   envelope.Message,
					Details:   envelope.Context,
					RequestID: envelope.CorrelationID,
				},
			})
		})
	}
}

// clientKey reduces the remote address to its host. RealIP rewrites
// RemoteAddr to a bare IP for proxied requests, which SplitHostPort
// rejects; the address is used as is in that case.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
