package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"product-catalog/service"
)

// PDFGenerator prints catalog pages
type PDFGenerator interface {
	GeneratePDF(ctx context.Context, page int) ([]byte, error)
}

// ExportController handles HTTP requests for catalog exports
type ExportController struct {
	catalogService *service.CatalogService
	pdf            PDFGenerator
}

// NewExportController creates a new ExportController
func NewExportController(catalogService *service.CatalogService, pdf PDFGenerator) *ExportController {
	return &ExportController{catalogService: catalogService, pdf: pdf}
}

// ExportPDF handles GET /catalog/export.pdf?page=N
func (c *ExportController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	// Reject pages the print view cannot render before starting a browser
	if _, err := c.catalogService.PrintView(page); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Int("page", page).Msg("ExportPDF: cannot export page")
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	pdfData, err := c.pdf.GeneratePDF(r.Context(), page)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int("page", page).Msg("ExportPDF: error generating PDF")
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("catalog_page_%d.pdf", page)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("ExportPDF: error writing PDF response")
	}
}
