package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter is a fixed-window counter keyed by client IP, used in front of
// the auth endpoints to slow down credential guessing.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window // per-IP windows
	max     int                // requests per window
	per     time.Duration      // window size
}

type window struct {
	start time.Time // window start
	used  int       // requests seen this window
}

// New creates a limiter allowing max requests per window
func New(max int, per time.Duration) *Limiter {
	return &Limiter{windows: map[string]*window{}, max: max, per: per}
}

// Allow records one request from ip and reports whether it is within limits
func (l *Limiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[ip]
	if w == nil || now.Sub(w.start) > l.per {
		// Opportunistic cleanup keeps the map from growing with dead IPs
		if len(l.windows) > 1024 {
			for k, old := range l.windows {
				if now.Sub(old.start) > l.per {
					delete(l.windows, k)
				}
			}
		}
		w = &window{start: now}
		l.windows[ip] = w
	}
	if w.used >= l.max {
		return false
	}
	w.used++
	return true
}

// Middleware enforces the rate limit before calling the next handler
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}
		if !l.Allow(ip) {
			http.Error(w, "rate limit", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}
