package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var whitelistedIPs = map[string]bool{
	"127.0.0.1": true, // local probes
	"::1":       true,
}

// limiterRegistry hands out one token bucket per client IP.
type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (lr *limiterRegistry) get(ip string) *rate.Limiter {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if limiter, exists := lr.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(lr.rps, lr.burst)
	lr.limiters[ip] = limiter
	return limiter
}

// RateLimitMiddleware throttles each client IP to rps requests per second
// with the given burst headroom.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	registry := &limiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			if whitelistedIPs[ip] {
				next.ServeHTTP(w, r)
				return
			}

			if !registry.get(ip).Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
