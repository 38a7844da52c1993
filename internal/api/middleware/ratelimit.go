package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/cityinfohq/cityinfo-api/internal/api/shared"
)

// RateLimit applies a process-wide token bucket to all requests. A
// non-positive perSecond disables limiting entirely.
func RateLimit(perSecond float64, burst int) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
