package controller

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"product-catalog/catalog"
	"product-catalog/models"
	"product-catalog/service"
)

// statusFor maps catalog errors to HTTP status codes
func statusFor(err error) int {
	var fetchErr *catalog.FetchError
	var verr *catalog.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &fetchErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &verr) && verr.Field == "card":
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// writePage renders a full catalog page with status
func writePage(w http.ResponseWriter, r *http.Request, status int, view service.PageView) {
	var buf bytes.Buffer
	if err := service.WritePage(&buf, view); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("writePage: template failed")
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, status, buf.Bytes())
}

// writeCard renders a single card fragment with status
func writeCard(w http.ResponseWriter, r *http.Request, status int, card models.CardView) {
	var buf bytes.Buffer
	if err := service.WriteCard(&buf, card); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("writeCard: template failed")
		http.Error(w, "Failed to render card", http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("writeHTML: error writing response")
	}
}

// pageParam parses the page query parameter, defaulting to 1
func pageParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, &catalog.ValidationError{Field: "page", Value: raw, Reason: "not a page number"}
	}
	return page, nil
}
