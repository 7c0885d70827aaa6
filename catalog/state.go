package catalog

import (
	"context"
	"errors"
	"strconv"

	"product-catalog/models"
)

// ProductSource loads the product feed
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]models.Product, error)
	Describe() string
}

// Feed is the product collection loaded once per process.
// Err is set when the load failed, in which case Products is empty.
type Feed struct {
	Products []models.Product
	Err      *FetchError
}

// LoadFeed performs the one-time fetch of the product feed.
// There is no retry: a failed load yields an empty feed carrying the error.
func LoadFeed(ctx context.Context, source ProductSource) Feed {
	products, err := source.LoadProducts(ctx)
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			fetchErr = &FetchError{Source: source.Describe(), Err: err}
		}
		return Feed{Products: []models.Product{}, Err: fetchErr}
	}
	if products == nil {
		products = []models.Product{}
	}
	return Feed{Products: products}
}

// State is the catalog state of one visitor
type State struct {
	feed      Feed
	pageSize  int
	leadSlots int
	page      int
	cards     map[int]models.UnitSelection // keyed by feed position
}

// NewState creates the state of a catalog positioned on page 1
func NewState(feed Feed, pageSize, leadSlots int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &State{
		feed:      feed,
		pageSize:  pageSize,
		leadSlots: clampLead(leadSlots, pageSize),
		page:      1,
		cards:     make(map[int]models.UnitSelection),
	}
}

// Page returns the current page number
func (s *State) Page() int {
	return s.page
}

// PageSize returns the number of slots per page
func (s *State) PageSize() int {
	return s.pageSize
}

// TotalPages returns the number of pages of the catalog
func (s *State) TotalPages() int {
	return TotalPages(len(s.feed.Products), s.pageSize, s.leadSlots)
}

// FetchErr returns the feed load error, if any
func (s *State) FetchErr() *FetchError {
	return s.feed.Err
}

// Request returns the page request for page
func (s *State) Request(page int) models.PageRequest {
	return models.PageRequest{PageNumber: page, PageSize: s.pageSize, LeadSlots: s.leadSlots}
}

// LeadSlotsOn returns the number of static lead cards shown on page
func (s *State) LeadSlotsOn(page int) int {
	if page != 1 {
		return 0
	}
	return s.leadSlots
}

// CardID returns the ID of the card showing the product at feed position i.
// Cards are addressed by position because product IDs and codes may repeat or be missing.
func CardID(i int) string {
	return strconv.Itoa(i)
}

// position resolves cardID to a feed position
func (s *State) position(cardID string) (int, bool) {
	i, err := strconv.Atoi(cardID)
	if err != nil || i < 0 || i >= len(s.feed.Products) || CardID(i) != cardID {
		return 0, false
	}
	return i, true
}

// Selection returns the unit selection of a card, defaulting for untouched cards
func (s *State) Selection(cardID string) models.UnitSelection {
	i, ok := s.position(cardID)
	if !ok {
		return models.DefaultUnitSelection()
	}
	return s.selectionAt(i)
}

func (s *State) selectionAt(i int) models.UnitSelection {
	if sel, ok := s.cards[i]; ok {
		return sel
	}
	return models.DefaultUnitSelection()
}

func (s *State) setSelection(i int, sel models.UnitSelection) {
	s.cards[i] = sel
}
