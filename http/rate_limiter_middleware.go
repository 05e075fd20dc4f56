package http

import (
	"net"
	"net/http"
	"strconv"
)

// RateLimitMiddleware refuses requests once the client's bucket is empty.
// Clients are keyed by remote IP; chi's RealIP middleware should run first
// when the service sits behind a proxy.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(limiter.refillDur.Seconds()))))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
