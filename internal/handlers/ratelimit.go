package handlers

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window counter keyed by client IP. It is
// in-process and best-effort: counters are not shared between instances
// and reset on restart, which is acceptable at this system's scale.
type RateLimiter struct {
	windows   sync.Map // key -> *rateWindow
	window    time.Duration
	limit     int
	keyPrefix string
	message   string
}

type rateWindow struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// NewRateLimiter creates a limiter and starts its background sweep. The
// prefix keeps independent policies (general vs auth) from ever sharing
// a counter for the same IP.
func NewRateLimiter(window time.Duration, limit int, keyPrefix, message string) *RateLimiter {
	rl := &RateLimiter{
		window:    window,
		limit:     limit,
		keyPrefix: keyPrefix,
		message:   message,
	}
	go rl.sweep()
	return rl
}

// sweep discards expired windows to bound memory. Correctness does not
// depend on it: an unswept expired window is still treated as expired on
// its next access.
func (rl *RateLimiter) sweep() {
	for {
		time.Sleep(rl.window)
		now := time.Now()
		rl.windows.Range(func(key, value any) bool {
			win := value.(*rateWindow)
			win.mu.Lock()
			expired := now.After(win.resetAt)
			win.mu.Unlock()
			if expired {
				rl.windows.Delete(key)
			}
			return true
		})
	}
}

// Middleware enforces the limit before any application work happens.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyPrefix + clientIP(r)
		if !rl.allow(key) {
			slog.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path)
			respondErrorMsg(w, http.StatusTooManyRequests, rl.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow starts a fresh window with count 1 when none exists or the
// existing one has expired; otherwise it increments unless the cap is
// already reached.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()
	value, _ := rl.windows.LoadOrStore(key, &rateWindow{resetAt: now.Add(rl.window)})
	win := value.(*rateWindow)

	win.mu.Lock()
	defer win.mu.Unlock()

	if now.After(win.resetAt) {
		win.count = 1
		win.resetAt = now.Add(rl.window)
		return true
	}
	if win.count >= rl.limit {
		return false
	}
	win.count++
	return true
}

// clientIP prefers the first entry of X-Forwarded-For (the original
// client when behind a proxy), falling back to the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
