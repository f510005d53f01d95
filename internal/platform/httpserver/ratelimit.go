package httpserver

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// authRateLimiter throttles the unauthenticated auth endpoints per client
// IP. Authenticated routes are not limited here.
type authRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*clientLimiter
	ratePerMin int
	burst      int
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newAuthRateLimiter(ratePerMin int, burst int) *authRateLimiter {
	if ratePerMin <= 0 {
		ratePerMin = 30
	}
	if burst <= 0 {
		burst = 10
	}
	return &authRateLimiter{
		limiters:   make(map[string]*clientLimiter),
		ratePerMin: ratePerMin,
		burst:      burst,
	}
}

func (l *authRateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[clientIP]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.ratePerMin)/60.0), l.burst),
		}
		l.limiters[clientIP] = entry
	}
	entry.lastAccess = time.Now()

	// Opportunistic cleanup keeps the map from growing unbounded.
	if len(l.limiters) > 10000 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, stale := range l.limiters {
			if stale.lastAccess.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
	}
	return entry.limiter.Allow()
}

func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(resolveClientIP(r)) {
			if s.collector != nil {
				s.collector.RecordRateLimited()
			}
			w.Header().Set("Retry-After", "2")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"code":    "rate_limit_exceeded",
				"message": "too many requests, try again later",
			})
			return
		}
		next(w, r)
	}
}
