package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterCapsRequests(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 5, "auth:", "too many attempts, please try again later")

	var served int
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 1; i <= 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:51000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if i <= 5 && rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i, rec.Code)
		}
		if i == 6 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("request 6: status %d, want 429", rec.Code)
		}
	}
	if served != 5 {
		t.Errorf("inner handler served %d requests, want 5", served)
	}
}

func TestRateLimiterKeysByIP(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1, "", "too many requests")

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/performances", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("203.0.113.1:1000"); code != http.StatusOK {
		t.Errorf("first IP first request: %d", code)
	}
	if code := send("203.0.113.1:2000"); code != http.StatusTooManyRequests {
		t.Errorf("first IP second request: %d, want 429 (port must not matter)", code)
	}
	if code := send("203.0.113.2:1000"); code != http.StatusOK {
		t.Errorf("second IP not independent: %d", code)
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(50*time.Millisecond, 1, "", "too many requests")

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/performances", nil)
		req.RemoteAddr = "203.0.113.1:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d, want 429", code)
	}

	time.Sleep(80 * time.Millisecond)
	if code := send(); code != http.StatusOK {
		t.Errorf("request after window expiry: %d, want 200", code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"socket address", "192.0.2.4:5123", "", "192.0.2.4"},
		{"single forwarded", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "10.0.0.1:80", "203.0.113.7, 10.0.0.2, 10.0.0.1", "203.0.113.7"},
		{"forwarded with space", "10.0.0.1:80", " 203.0.113.7 ", "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
