package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"product-catalog/service"
)

// Thumbnailer builds card thumbnails
type Thumbnailer interface {
	Thumbnail(ctx context.Context, code string) ([]byte, error)
}

// ImageController handles HTTP requests for product images
type ImageController struct {
	thumbnails Thumbnailer
}

// NewImageController creates a new ImageController
func NewImageController(thumbnails Thumbnailer) *ImageController {
	return &ImageController{thumbnails: thumbnails}
}

// GetThumbnail handles GET /images/{code}/thumb
func (c *ImageController) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	data, err := c.thumbnails.Thumbnail(r.Context(), code)
	if errors.Is(err, service.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("code", code).Msg("GetThumbnail: failed")
		http.Error(w, "Failed to build thumbnail", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("GetThumbnail: error writing response")
	}
}
