package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/models"
)

type recordingRenderer struct {
	cleared   int
	lead      int
	cards     []models.CardView
	window    *models.PaginationWindow
	fetchErrs []*FetchError
}

func (r *recordingRenderer) ClearCards() {
	r.cleared++
	r.cards = nil
	r.lead = 0
}

func (r *recordingRenderer) RenderLeadCards(count int) {
	r.lead = count
}

func (r *recordingRenderer) RenderCard(card models.CardView) {
	r.cards = append(r.cards, card)
}

func (r *recordingRenderer) RenderPaginationControl(window models.PaginationWindow) {
	r.window = &window
}

func (r *recordingRenderer) RenderFetchError(err *FetchError) {
	r.fetchErrs = append(r.fetchErrs, err)
}

type stubSource struct {
	products []models.Product
	err      error
}

func (s stubSource) LoadProducts(context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s stubSource) Describe() string {
	return "stub"
}

func newTestController(t *testing.T, products []models.Product, leadSlots int) (*Controller, *recordingRenderer) {
	t.Helper()
	feed := LoadFeed(context.Background(), stubSource{products: products})
	require.Nil(t, feed.Err)
	renderer := &recordingRenderer{}
	return NewController(NewState(feed, 3, leadSlots), renderer), renderer
}

func cardCodes(cards []models.CardView) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Product.Code
	}
	return out
}

// tileCard addresses the tile product, which every card test puts first in the feed
var tileCard = CardID(0)

func TestControllerShowPage(t *testing.T) {
	products := makeProducts(7)
	ctrl, r := newTestController(t, products, 0)

	ctrl.ShowPage(1)
	assert.Equal(t, codes(products[0:3]), cardCodes(r.cards))
	require.NotNil(t, r.window)
	assert.Equal(t, 3, r.window.TotalPages)
	assert.Equal(t, 0, r.lead)

	require.NoError(t, ctrl.HandlePageClick("3"))
	assert.Equal(t, codes(products[6:7]), cardCodes(r.cards))
	assert.Equal(t, 3, ctrl.State().Page())
	assert.Equal(t, 2, r.cleared)
}

func TestControllerShowPageWithLeadSlot(t *testing.T) {
	products := makeProducts(7)
	ctrl, r := newTestController(t, products, 1)

	ctrl.ShowPage(1)
	assert.Equal(t, 1, r.lead)
	assert.Equal(t, codes(products[0:2]), cardCodes(r.cards))

	require.NoError(t, ctrl.HandlePageClick("3"))
	assert.Equal(t, 0, r.lead)
	assert.Equal(t, codes(products[5:7]), cardCodes(r.cards))
}

func TestControllerRejectsBadPageLabels(t *testing.T) {
	ctrl, r := newTestController(t, makeProducts(7), 0)
	ctrl.ShowPage(2)

	for _, label := range []string{"...", "0", "4", ""} {
		err := ctrl.HandlePageClick(label)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "label %q", label)
		assert.Equal(t, "page", verr.Field)
	}
	assert.Equal(t, 2, ctrl.State().Page())
	assert.Equal(t, 1, r.cleared)
}

func TestControllerUnitToggle(t *testing.T) {
	p := tileProduct()
	p.PriceGoldAlt = 12.345
	ctrl, r := newTestController(t, []models.Product{p}, 0)

	view, err := ctrl.HandleUnitClick(tileCard, models.UnitModeAlternate)
	require.NoError(t, err)
	assert.Equal(t, "12.35", view.GoldPriceText)
	assert.Equal(t, models.UnitModeAlternate, view.Display.Mode)
	require.Len(t, r.cards, 1)

	// clicking the active unit again changes nothing
	again, err := ctrl.HandleUnitClick(tileCard, models.UnitModeAlternate)
	require.NoError(t, err)
	assert.Equal(t, view, again)

	back, err := ctrl.HandleUnitClick(tileCard, models.UnitModePrimary)
	require.NoError(t, err)
	assert.Equal(t, "1052.5", back.GoldPriceText)

	_, err = ctrl.HandleUnitClick(tileCard, models.UnitMode("metric"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestControllerStepper(t *testing.T) {
	p := tileProduct()
	ctrl, _ := newTestController(t, []models.Product{p}, 0)

	view, err := ctrl.HandleStepDown(tileCard)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Display.Quantity, "decrement at the floor is a no-op")

	_, err = ctrl.HandleStepUp(tileCard)
	require.NoError(t, err)
	view, err = ctrl.HandleStepUp(tileCard)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Display.Quantity)
	require.NotNil(t, view.Display.ConversionLine)
	assert.Equal(t, "3 упак. = 7.41 м. кв.", *view.Display.ConversionLine)

	view, err = ctrl.HandleStepDown(tileCard)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Display.Quantity)
}

func TestControllerQuantityInput(t *testing.T) {
	p := tileProduct()
	ctrl, _ := newTestController(t, []models.Product{p}, 0)

	view, err := ctrl.HandleQuantityInput(tileCard, " 5 упак")
	require.NoError(t, err)
	assert.Equal(t, 5, view.Display.Quantity)

	for _, raw := range []string{"abc", "", "0", "-2"} {
		view, err = ctrl.HandleQuantityInput(tileCard, raw)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", raw)
		assert.Equal(t, 5, view.Display.Quantity, "previous quantity is kept for %q", raw)
	}
}

func TestControllerUnknownCard(t *testing.T) {
	ctrl, _ := newTestController(t, makeProducts(2), 0)

	for _, id := range []string{"missing", "2", "-1", "01", "1001"} {
		_, err := ctrl.HandleStepUp(id)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "card %q", id)
		assert.Equal(t, "card", verr.Field)
	}
}

func TestControllerCardsAreKeyedByFeedPosition(t *testing.T) {
	products := []models.Product{
		{ProductID: "X", Code: "1", Title: "one", Unit: "шт."},
		{ProductID: "X", Code: "2", Title: "two", Unit: "шт."},
		{Title: "three", Unit: "шт."},
		{Title: "four", Unit: "шт."},
	}
	feed := LoadFeed(context.Background(), stubSource{products: products})
	r := &recordingRenderer{}
	ctrl := NewController(NewState(feed, 4, 0), r)

	ctrl.ShowPage(1)
	require.Len(t, r.cards, 4)
	for i, card := range r.cards {
		assert.Equal(t, CardID(i), card.ID)
		assert.Equal(t, products[i].Title, card.TitleText)
	}

	view, err := ctrl.HandleStepUp(CardID(1))
	require.NoError(t, err)
	assert.Equal(t, "two", view.TitleText)
	assert.Equal(t, 2, view.Display.Quantity)
	assert.Equal(t, 1, ctrl.State().Selection(CardID(0)).Quantity)

	view, err = ctrl.HandleStepUp(CardID(3))
	require.NoError(t, err)
	assert.Equal(t, "four", view.TitleText)
	assert.Equal(t, 1, ctrl.State().Selection(CardID(2)).Quantity)
}

func TestControllerEmptyFeedHasNoPagination(t *testing.T) {
	feed := LoadFeed(context.Background(), stubSource{})
	r := &recordingRenderer{}
	ctrl := NewController(NewState(feed, 3, 1), r)

	ctrl.ShowPage(1)
	assert.Equal(t, 1, r.cleared)
	assert.Empty(t, r.cards)
	assert.Nil(t, r.window)
}

func TestControllerInitialConversionLineUsesUnitRatio(t *testing.T) {
	p := tileProduct()
	p.UnitRatio = 2
	ctrl, r := newTestController(t, []models.Product{p}, 0)

	ctrl.ShowPage(1)
	require.Len(t, r.cards, 1)
	require.NotNil(t, r.cards[0].Display.ConversionLine)
	assert.Equal(t, "2 упак. = 2.47 м. кв.", *r.cards[0].Display.ConversionLine)

	// a unit switch keeps the initial line
	view, err := ctrl.HandleUnitClick(tileCard, models.UnitModeAlternate)
	require.NoError(t, err)
	assert.Equal(t, "2 упак. = 2.47 м. кв.", *view.Display.ConversionLine)

	view, err = ctrl.HandleStepUp(tileCard)
	require.NoError(t, err)
	assert.Equal(t, "2 упак. = 4.94 м. кв.", *view.Display.ConversionLine)

	view, err = ctrl.HandleStepDown(tileCard)
	require.NoError(t, err)
	assert.Equal(t, "1 упак. = 2.47 м. кв.", *view.Display.ConversionLine)
}

func TestControllerFetchError(t *testing.T) {
	feed := LoadFeed(context.Background(), stubSource{err: errors.New("connection refused")})
	require.NotNil(t, feed.Err)
	assert.Equal(t, "stub", feed.Err.Source)
	assert.Empty(t, feed.Products)

	r := &recordingRenderer{}
	ctrl := NewController(NewState(feed, 3, 0), r)
	ctrl.ShowPage(1)

	require.Len(t, r.fetchErrs, 1)
	assert.ErrorContains(t, r.fetchErrs[0], "connection refused")
	assert.Empty(t, r.cards)
	assert.Nil(t, r.window)
}

func TestDispatch(t *testing.T) {
	p := tileProduct()
	products := append([]models.Product{p}, makeProducts(5)...)
	ctrl, r := newTestController(t, products, 0)
	ctrl.ShowPage(1)

	require.NoError(t, ctrl.Dispatch(Event{Kind: EventStepUp, CardID: tileCard}))
	require.NoError(t, ctrl.Dispatch(Event{Kind: EventUnitClick, CardID: tileCard, Value: "alternate"}))
	assert.Equal(t, models.UnitSelection{ActiveUnitMode: models.UnitModeAlternate, Quantity: 2, QuantityEdited: true}, ctrl.State().Selection(tileCard))

	require.NoError(t, ctrl.Dispatch(Event{Kind: EventQuantityInput, CardID: tileCard, Value: "7"}))
	require.NoError(t, ctrl.Dispatch(Event{Kind: EventStepDown, CardID: tileCard}))
	assert.Equal(t, 6, ctrl.State().Selection(tileCard).Quantity)

	require.NoError(t, ctrl.Dispatch(Event{Kind: EventPageClick, Value: "2"}))
	assert.Equal(t, 2, ctrl.State().Page())
	assert.Len(t, r.cards, 3)

	assert.Error(t, ctrl.Dispatch(Event{Kind: "hover"}))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "3", want: 3},
		{raw: "  12", want: 12},
		{raw: "2.7", want: 2},
		{raw: "4шт", want: 4},
		{raw: "+6", want: 6},
		{raw: "x4", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "99999999999999999999", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseQuantity(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "ParseQuantity(%q)", tt.raw)
			continue
		}
		require.NoError(t, err, "ParseQuantity(%q)", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}
