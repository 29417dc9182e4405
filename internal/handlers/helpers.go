package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Rickychen930/sing4you-sub002/internal/apperr"
)

// envelope is the response shape for every endpoint:
// {"success":true,"data":...} or {"success":false,"error":"..."}.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"message": msg})
}

// respondError maps an error's kind to a status code. Internal errors get
// a generic message — details go to the log, never the response.
func respondError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	msg := err.Error()
	if kind == apperr.Internal {
		slog.Error("Unexpected error", "error", err)
		msg = "internal server error"
	}
	writeJSON(w, statusForKind(kind), envelope{Success: false, Error: msg})
}

func respondErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.RateLimited:
		return http.StatusTooManyRequests
	case apperr.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid JSON payload", err)
	}
	return nil
}
