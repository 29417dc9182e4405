package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rickychen930/sing4you-sub002/internal/auth"
)

func protectedHandler(t *testing.T, tokens *auth.TokenIssuer, hit *bool) http.Handler {
	t.Helper()
	return RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		id, ok := IdentityFrom(r.Context())
		if !ok {
			t.Error("no identity on authenticated request context")
		}
		if id.UserID == "" {
			t.Error("identity has empty user ID")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAuthAccepts(t *testing.T) {
	tokens := auth.NewTokenIssuer("a", "r", time.Hour, time.Hour)
	raw, err := tokens.IssueAccessToken("admin-1", "julie@example.com")
	if err != nil {
		t.Fatal(err)
	}

	var hit bool
	h := protectedHandler(t, tokens, &hit)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !hit {
		t.Fatal("inner handler not reached")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	tokens := auth.NewTokenIssuer("a", "r", time.Hour, time.Hour)
	expired := auth.NewTokenIssuer("a", "r", -time.Minute, -time.Minute)
	expiredTok, err := expired.IssueAccessToken("admin-1", "julie@example.com")
	if err != nil {
		t.Fatal(err)
	}
	wrongKey := auth.NewTokenIssuer("other", "r", time.Hour, time.Hour)
	forgedTok, err := wrongKey.IssueAccessToken("admin-1", "julie@example.com")
	if err != nil {
		t.Fatal(err)
	}
	refreshTok, err := tokens.IssueRefreshToken("admin-1", "julie@example.com")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expiredTok},
		{"wrong signature", "Bearer " + forgedTok},
		{"refresh token as access", "Bearer " + refreshTok},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit bool
			h := protectedHandler(t, tokens, &hit)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/invoices", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if hit {
				t.Error("inner handler reached on unauthenticated request")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body.Success {
				t.Error("success = true on a 401")
			}
			if body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
