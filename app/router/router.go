package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"

	"product-catalog/app/controller"
	"product-catalog/app/middleware"
)

// Controllers groups the HTTP controllers. Image and Export are optional.
type Controllers struct {
	Catalog *controller.CatalogController
	Card    *controller.CardController
	Image   *controller.ImageController
	Export  *controller.ExportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter builds the HTTP handler of the catalog
func NewRouter(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(chiMid.RealIP)
	r.Use(middleware.HTMX)
	r.Use(middleware.Logger)
	r.Use(chiMid.Recoverer)

	// Ping endpoint
	r.Get("/ping", pingHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusFound)
	})

	// Catalog pages
	r.Get("/catalog", controllers.Catalog.ShowCatalog)
	r.Post("/catalog/page", controllers.Catalog.SelectPage)
	r.Get("/catalog/print", controllers.Catalog.PrintCatalog)

	// Card controls
	r.Route("/cards/{cardID}", func(r chi.Router) {
		r.Post("/unit", controllers.Card.SelectUnit)
		r.Post("/quantity", controllers.Card.SetQuantity)
		r.Post("/step/{dir}", controllers.Card.Step)
	})

	if controllers.Image != nil {
		r.Get("/images/{code}/thumb", controllers.Image.GetThumbnail)
	}

	if controllers.Export != nil {
		r.Get("/catalog/export.pdf", controllers.Export.ExportPDF)
	}

	return r
}
