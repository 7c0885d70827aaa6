package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"product-catalog/models"
	"product-catalog/utils"
)

// Renderer draws the catalog
type Renderer interface {
	ClearCards()
	RenderLeadCards(count int)
	RenderCard(card models.CardView)
	RenderPaginationControl(window models.PaginationWindow)
	RenderFetchError(err *FetchError)
}

// ImageURLFunc returns the image shown on a product's card
type ImageURLFunc func(product models.Product) string

// Controller handles the user events of one catalog and renders the results
type Controller struct {
	state    *State
	renderer Renderer
	labels   *UnitLabels
	imageURL ImageURLFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithUnitLabels overrides the built-in unit label table
func WithUnitLabels(labels *UnitLabels) Option {
	return func(c *Controller) {
		c.labels = labels
	}
}

// WithImageURL overrides how card image URLs are built
func WithImageURL(fn ImageURLFunc) Option {
	return func(c *Controller) {
		c.imageURL = fn
	}
}

// NewController creates a Controller owning state
func NewController(state *State, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		state:    state,
		renderer: renderer,
		labels:   DefaultUnitLabels(),
		imageURL: func(p models.Product) string { return utils.ThumbnailURL(p.PrimaryImageURL) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the state owned by the controller
func (c *Controller) State() *State {
	return c.state
}

// ShowPage renders the cards and pagination control of page and makes it current
func (c *Controller) ShowPage(page int) {
	if fetchErr := c.state.FetchErr(); fetchErr != nil {
		c.renderer.RenderFetchError(fetchErr)
		return
	}

	c.state.page = page
	c.renderer.ClearCards()
	if lead := c.state.LeadSlotsOn(page); lead > 0 {
		c.renderer.RenderLeadCards(lead)
	}
	start, end := PageBounds(c.state.Request(page), len(c.state.feed.Products))
	for i := start; i < end; i++ {
		c.renderer.RenderCard(c.cardView(i))
	}
	// An empty catalog has no pages to navigate
	if total := c.state.TotalPages(); total > 0 {
		c.renderer.RenderPaginationControl(BuildPaginationWindow(page, total))
	}
}

// Refresh renders the current page again
func (c *Controller) Refresh() {
	c.ShowPage(c.state.page)
}

// HandlePageClick shows the page named by a pagination button label
func (c *Controller) HandlePageClick(label string) error {
	page, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return &ValidationError{Field: "page", Value: label, Reason: "not a page number"}
	}
	if page < 1 || page > c.state.TotalPages() {
		return &ValidationError{
			Field:  "page",
			Value:  label,
			Reason: fmt.Sprintf("must be between 1 and %d", c.state.TotalPages()),
		}
	}
	c.ShowPage(page)
	return nil
}

// HandleUnitClick switches a card to mode. Clicking the active unit is a no-op.
func (c *Controller) HandleUnitClick(cardID string, mode models.UnitMode) (models.CardView, error) {
	i, err := c.position(cardID)
	if err != nil {
		return models.CardView{}, err
	}
	if mode != models.UnitModePrimary && mode != models.UnitModeAlternate {
		return c.renderCard(i), &ValidationError{Field: "mode", Value: string(mode), Reason: "unknown unit mode"}
	}

	sel := c.state.selectionAt(i)
	if sel.ActiveUnitMode != mode && c.state.feed.Products[i].HasAlternateUnit() {
		sel.ActiveUnitMode = mode
		c.state.setSelection(i, sel)
	}
	return c.renderCard(i), nil
}

// HandleQuantityInput sets a card quantity from typed input.
// Invalid input keeps the previous quantity.
func (c *Controller) HandleQuantityInput(cardID, raw string) (models.CardView, error) {
	i, err := c.position(cardID)
	if err != nil {
		return models.CardView{}, err
	}
	quantity, err := ParseQuantity(raw)
	if err != nil {
		return c.renderCard(i), err
	}

	sel := c.state.selectionAt(i)
	sel.Quantity = quantity
	sel.QuantityEdited = true
	c.state.setSelection(i, sel)
	return c.renderCard(i), nil
}

// HandleStepUp increments a card quantity
func (c *Controller) HandleStepUp(cardID string) (models.CardView, error) {
	return c.step(cardID, 1)
}

// HandleStepDown decrements a card quantity; at 1 it is a no-op
func (c *Controller) HandleStepDown(cardID string) (models.CardView, error) {
	return c.step(cardID, -1)
}

func (c *Controller) step(cardID string, delta int) (models.CardView, error) {
	i, err := c.position(cardID)
	if err != nil {
		return models.CardView{}, err
	}

	sel := c.state.selectionAt(i)
	sel.Quantity += delta
	if sel.Quantity < 1 {
		sel.Quantity = 1
	}
	sel.QuantityEdited = true
	c.state.setSelection(i, sel)
	return c.renderCard(i), nil
}

func (c *Controller) position(cardID string) (int, error) {
	i, ok := c.state.position(cardID)
	if !ok {
		return 0, &ValidationError{Field: "card", Value: cardID, Reason: "no such product"}
	}
	return i, nil
}

func (c *Controller) renderCard(i int) models.CardView {
	view := c.cardView(i)
	c.renderer.RenderCard(view)
	return view
}

// CardView builds the view of a card with its current selection
func (c *Controller) CardView(cardID string) (models.CardView, error) {
	i, err := c.position(cardID)
	if err != nil {
		return models.CardView{}, err
	}
	return c.cardView(i), nil
}

// cardView builds the view of the card showing the product at feed position i
func (c *Controller) cardView(i int) models.CardView {
	product := c.state.feed.Products[i]
	sel := c.state.selectionAt(i)
	display := c.labels.ComputeDisplay(product, sel.Quantity, sel.ActiveUnitMode)
	if display.ConversionLine != nil && !sel.QuantityEdited {
		line := InitialConversionLine(product)
		display.ConversionLine = &line
	}
	return models.CardView{
		ID:              CardID(i),
		Product:         product,
		Display:         display,
		DisplayCode:     utils.DisplayCode(product.Code),
		ImageURL:        c.imageURL(product),
		AssocTags:       utils.FormatAssocTags(DedupeAssocProducts(product.AssocProducts)),
		TitleText:       product.Title,
		GoldPriceText:   utils.FormatAmount(display.GoldPrice),
		RetailPriceText: utils.FormatAmount(display.RetailPrice),
	}
}

// ParseQuantity coerces typed quantity input to an integer.
// Leading whitespace and a trailing non-digit suffix are ignored ("3 шт" -> 3);
// input without leading digits or below 1 is rejected.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, &ValidationError{Field: "quantity", Value: raw, Reason: "not a number"}
	}

	quantity, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Value: raw, Reason: "out of range"}
	}
	if quantity < 1 {
		return 0, &ValidationError{Field: "quantity", Value: raw, Reason: "must be at least 1"}
	}
	return quantity, nil
}
