package service

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"product-catalog/catalog"
	"product-catalog/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageView is the data the catalog page template is executed with
type PageView struct {
	LeadCards  []int
	Cards      []models.CardView
	Pagination *models.PaginationWindow
	FetchError *catalog.FetchError
	Flash      string
	Print      bool
}

// HTMLRenderer collects what the catalog controller draws into a PageView
type HTMLRenderer struct {
	view      PageView
	sanitizer *bluemonday.Policy
}

// Ensure HTMLRenderer implements catalog.Renderer
var _ catalog.Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer creates a new HTMLRenderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{sanitizer: bluemonday.StrictPolicy()}
}

// ClearCards drops the cards of the previous page
func (r *HTMLRenderer) ClearCards() {
	r.view.LeadCards = nil
	r.view.Cards = nil
	r.view.Pagination = nil
	r.view.FetchError = nil
}

// RenderLeadCards reserves count static lead cards ahead of the product cards
func (r *HTMLRenderer) RenderLeadCards(count int) {
	r.view.LeadCards = make([]int, count)
}

// RenderCard adds card, or replaces the card with the same ID when it is already drawn
func (r *HTMLRenderer) RenderCard(card models.CardView) {
	card.TitleText = r.plainText(card.TitleText)
	for i := range r.view.Cards {
		if r.view.Cards[i].ID == card.ID {
			r.view.Cards[i] = card
			return
		}
	}
	r.view.Cards = append(r.view.Cards, card)
}

// RenderPaginationControl sets the pagination control
func (r *HTMLRenderer) RenderPaginationControl(window models.PaginationWindow) {
	r.view.Pagination = &window
}

// RenderFetchError replaces the page with the feed error
func (r *HTMLRenderer) RenderFetchError(err *catalog.FetchError) {
	r.view = PageView{FetchError: err}
}

// View returns a copy of the collected page
func (r *HTMLRenderer) View() PageView {
	view := r.view
	view.Cards = append([]models.CardView(nil), r.view.Cards...)
	return view
}

// Card returns the drawn card with the given ID
func (r *HTMLRenderer) Card(cardID string) (models.CardView, bool) {
	for _, card := range r.view.Cards {
		if card.ID == cardID {
			return card, true
		}
	}
	return models.CardView{}, false
}

// plainText strips markup from feed text; the template escapes the result
func (r *HTMLRenderer) plainText(s string) string {
	return html.UnescapeString(r.sanitizer.Sanitize(s))
}

// WritePage executes the full catalog page template
func WritePage(w io.Writer, view PageView) error {
	if err := templates.ExecuteTemplate(w, "catalog", view); err != nil {
		return fmt.Errorf("failed to execute catalog template: %w", err)
	}
	return nil
}

// WriteCard executes the template of a single card
func WriteCard(w io.Writer, card models.CardView) error {
	if err := templates.ExecuteTemplate(w, "card", card); err != nil {
		return fmt.Errorf("failed to execute card template: %w", err)
	}
	return nil
}
