package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"product-catalog/app/middleware"
	"product-catalog/catalog"
)

// CardController handles HTTP requests for the interactive controls of a product card
type CardController struct {
	catalog *CatalogController
}

// NewCardController creates a new CardController sharing the sessions of catalogController
func NewCardController(catalogController *CatalogController) *CardController {
	return &CardController{catalog: catalogController}
}

// SelectUnit handles POST /cards/{cardID}/unit with form field mode
func (c *CardController) SelectUnit(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, catalog.EventUnitClick, "mode")
}

// SetQuantity handles POST /cards/{cardID}/quantity with form field quantity
func (c *CardController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, catalog.EventQuantityInput, "quantity")
}

// Step handles POST /cards/{cardID}/step/{dir} where dir is up or down
func (c *CardController) Step(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "dir") {
	case "up":
		c.handle(w, r, catalog.EventStepUp, "")
	case "down":
		c.handle(w, r, catalog.EventStepDown, "")
	default:
		http.NotFound(w, r)
	}
}

// handle applies a card event. htmx requests get the redrawn card;
// plain form posts are redirected back to the catalog.
func (c *CardController) handle(w http.ResponseWriter, r *http.Request, kind catalog.EventKind, field string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	ev := catalog.Event{Kind: kind, CardID: chi.URLParam(r, "cardID")}
	if field != "" {
		ev.Value = r.PostForm.Get(field)
	}

	sess := c.catalog.session(w, r)
	card, err := c.catalog.catalogService.HandleCardEvent(sess, ev)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("card", ev.CardID).Str("event", string(kind)).Msg("HandleCardEvent: rejected")
	}
	status := statusFor(err)

	if !middleware.IsHTMX(r.Context()) {
		if err == nil {
			http.Redirect(w, r, "/catalog", http.StatusSeeOther)
			return
		}
		view, _ := c.catalog.catalogService.ShowPage(sess, "")
		if view.FetchError == nil {
			view.Flash = err.Error()
		}
		writePage(w, r, status, view)
		return
	}

	if card.ID == "" {
		http.Error(w, err.Error(), status)
		return
	}
	writeCard(w, r, status, card)
}
