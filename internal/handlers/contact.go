package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
	"github.com/Rickychen930/sing4you-sub002/internal/notify"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

type ContactHandler struct {
	Store    *store.Store // nil when persistence is unavailable
	Notifier notify.Notifier
	Log      *slog.Logger
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact. The lead save and the notification
// are both fire-and-forget: their failures are logged, never surfaced —
// a visitor who filled in the form always gets a success response once
// their input validates.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Message == "" {
		respondErrorMsg(w, http.StatusBadRequest, "name and message are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		respondErrorMsg(w, http.StatusBadRequest, "a valid email address is required")
		return
	}

	lead := &models.ContactLead{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	if h.Store != nil {
		if err := h.Store.CreateContactLead(lead); err != nil {
			h.Log.Error("Failed to save contact lead", "error", err)
		}
	} else {
		h.Log.Warn("Store unavailable, contact lead not persisted", "email", lead.Email)
	}

	if err := h.Notifier.ContactReceived(lead); err != nil {
		h.Log.Error("Failed to send contact notification", "error", err)
	}

	respondMessage(w, http.StatusOK, "thanks for getting in touch")
}
