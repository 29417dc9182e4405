package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Rickychen930/sing4you-sub002/internal/invoice"
	"github.com/Rickychen930/sing4you-sub002/internal/pdf"
)

type InvoiceHandler struct {
	Service *invoice.Service
	Log     *slog.Logger
}

// Create handles POST /api/admin/invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft invoice.Draft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, err)
		return
	}

	inv, err := h.Service.Create(&draft)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, inv)
}

// List handles GET /api/admin/invoices.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, invoices)
}

// Get handles GET /api/admin/invoices/{id}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Service.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, inv)
}

// ByClient handles GET /api/admin/clients/{clientId}/invoices.
func (h *InvoiceHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.ListByClient(r.PathValue("clientId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, invoices)
}

// NextNumber handles GET /api/admin/invoices/next-number. Always answers,
// even when the store is down, so the admin form has a prefill value.
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"invoiceNumber": h.Service.NextNumber()})
}

// Update handles PUT /api/admin/invoices/{id}.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch invoice.Patch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	inv, err := h.Service.Update(r.PathValue("id"), &patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, inv)
}

// Delete handles DELETE /api/admin/invoices/{id}.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "invoice deleted")
}

// DownloadPDF handles GET /api/admin/invoices/{id}/pdf.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Service.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	data, err := pdf.Render(inv)
	if err != nil {
		h.Log.Error("invoice pdf rendering failed", "id", inv.ID, "error", err)
		respondErrorMsg(w, http.StatusInternalServerError, "failed to render invoice document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(inv)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}
