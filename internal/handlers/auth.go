package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Rickychen930/sing4you-sub002/internal/auth"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	Auth         *auth.Service
	RefreshTTL   time.Duration
	CookieSecure bool
	CookieDomain string
	Log          *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. The access token goes back in the
// body for the client to hold in memory; the refresh token travels only
// as an HTTP-only cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondErrorMsg(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setRefreshCookie(w, result.RefreshToken)
	respond(w, http.StatusOK, map[string]any{
		"accessToken": result.AccessToken,
		"user":        result.User,
	})
}

// Refresh handles POST /api/auth/refresh. Exchanges the cookie-borne
// refresh token for a new access token; the refresh token itself is left
// as issued at login.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		respondErrorMsg(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	accessToken, err := h.Auth.Refresh(cookie.Value)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Logout handles POST /api/auth/logout by clearing the refresh cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	respondMessage(w, http.StatusOK, "logged out")
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		Domain:   h.CookieDomain,
		MaxAge:   int(h.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
