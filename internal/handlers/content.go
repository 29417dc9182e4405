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

// ContentHandler serves the public site content. Reads go through
// ContentReader so they degrade to the canned fallback when the database
// is unreachable; writes require the real store.
type ContentHandler struct {
	Reader store.ContentReader
	Store  *store.Store // nil when persistence is unavailable
	Log    *slog.Logger
}

// Performances handles GET /api/performances.
func (h *ContentHandler) Performances(w http.ResponseWriter, r *http.Request) {
	performances, err := h.Reader.GetAllPerformances()
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, performances)
}

// Testimonials handles GET /api/testimonials.
func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.Reader.GetAllTestimonials()
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, testimonials)
}

type performanceRequest struct {
	Title       string     `json:"title"`
	Venue       string     `json:"venue"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

// CreatePerformance handles POST /api/admin/performances.
func (h *ContentHandler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	var req performanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondErrorMsg(w, http.StatusBadRequest, "title is required")
		return
	}

	p := &models.Performance{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Venue:       req.Venue,
		Date:        time.Now(),
		Description: req.Description,
		Status:      req.Status,
		CreatedAt:   time.Now(),
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if p.Status == "" {
		p.Status = "upcoming"
	}

	if err := h.Store.CreatePerformance(p); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

// UpdatePerformance handles PUT /api/admin/performances/{id}.
func (h *ContentHandler) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	p, err := h.Store.GetPerformanceByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondErrorMsg(w, http.StatusNotFound, "performance not found")
		return
	}

	var req performanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondErrorMsg(w, http.StatusBadRequest, "title is required")
		return
	}

	p.Title = strings.TrimSpace(req.Title)
	p.Venue = req.Venue
	p.Description = req.Description
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.Status != "" {
		p.Status = req.Status
	}

	if _, err := h.Store.UpdatePerformance(p); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

// DeletePerformance handles DELETE /api/admin/performances/{id}.
func (h *ContentHandler) DeletePerformance(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	ok, err := h.Store.DeletePerformance(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondErrorMsg(w, http.StatusNotFound, "performance not found")
		return
	}
	respondMessage(w, http.StatusOK, "performance deleted")
}
