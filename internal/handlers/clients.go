package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rickychen930/sing4you-sub002/internal/apperr"
	"github.com/Rickychen930/sing4you-sub002/internal/models"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

// ClientHandler is the lightweight client tracker. Like invoices it
// depends on the concrete persistent store: client records are booking
// and billing data, so there is no canned fallback for them.
type ClientHandler struct {
	Store *store.Store // nil when persistence is unavailable
	Log   *slog.Logger
}

type clientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondErrorMsg(w, http.StatusBadRequest, "name is required")
		return
	}

	client := &models.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Company:   req.Company,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := h.Store.CreateClient(client); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	clients, err := h.Store.GetAllClients()
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	client, err := h.Store.GetClientByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if client == nil {
		respondErrorMsg(w, http.StatusNotFound, "client not found")
		return
	}
	respond(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	client, err := h.Store.GetClientByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if client == nil {
		respondErrorMsg(w, http.StatusNotFound, "client not found")
		return
	}

	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondErrorMsg(w, http.StatusBadRequest, "name is required")
		return
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Email = strings.TrimSpace(req.Email)
	client.Phone = req.Phone
	client.Company = req.Company
	client.Notes = req.Notes

	ok, err := h.Store.UpdateClient(client)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		// Deleted between the read above and the write.
		respondErrorMsg(w, http.StatusNotFound, "client not found")
		return
	}
	respond(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	ok, err := h.Store.DeleteClient(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondErrorMsg(w, http.StatusNotFound, "client not found")
		return
	}
	respondMessage(w, http.StatusOK, "client deleted")
}
