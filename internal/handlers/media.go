package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/Rickychen930/sing4you-sub002/internal/apperr"
	"github.com/Rickychen930/sing4you-sub002/internal/models"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

const maxUploadBytes = 10 << 20 // 10MB

type MediaHandler struct {
	Store     *store.Store // nil when persistence is unavailable
	UploadDir string
	Log       *slog.Logger
}

// Upload handles POST /api/admin/media. Images are decoded, resized to a
// max width of 800px preserving aspect ratio, re-encoded as JPEG and
// stored under a UUID filename.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respondError(w, apperr.ErrStoreUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "file too large, max 10MB")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	var img image.Image
	switch ext := filepath.Ext(header.Filename); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		respondErrorMsg(w, http.StatusBadRequest, "unsupported image format, only PNG and JPEG are allowed")
		return
	}
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	path := filepath.Join(h.UploadDir, filename)

	out, err := os.Create(path)
	if err != nil {
		h.Log.Error("Failed to create upload file", "path", path, "error", err)
		respondErrorMsg(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		h.Log.Error("Failed to encode image", "error", err)
		respondErrorMsg(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	media := &models.Media{
		ID:        uuid.New().String(),
		Filename:  filename,
		URL:       "/uploads/" + filename,
		CreatedAt: time.Now(),
	}
	if err := h.Store.CreateMedia(media); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, media)
}
