package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"product-catalog/catalog"
	"product-catalog/models"
	"product-catalog/utils"
)

// CatalogOptions configures a CatalogService
type CatalogOptions struct {
	PageSize  int
	LeadSlots int
	// Thumbnails serves card images from /images/{code}/thumb instead of the CDN variant
	Thumbnails bool
	Labels     *catalog.UnitLabels
	// SessionTTL expires idle sessions; zero keeps them forever
	SessionTTL time.Duration
}

// CatalogService renders the catalog of each visitor session
type CatalogService struct {
	feed     catalog.Feed
	opts     CatalogOptions
	sessions *SessionStore
	images   map[string]string // product code -> primary image URL
}

// NewCatalogService creates a new CatalogService over an already loaded feed
func NewCatalogService(feed catalog.Feed, opts CatalogOptions) *CatalogService {
	if opts.PageSize < 1 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.Labels == nil {
		opts.Labels = catalog.DefaultUnitLabels()
	}

	images := make(map[string]string, len(feed.Products))
	for _, p := range feed.Products {
		if _, ok := images[p.Code]; !ok && p.Code != "" {
			images[p.Code] = p.PrimaryImageURL
		}
	}

	s := &CatalogService{feed: feed, opts: opts, images: images}
	s.sessions = NewSessionStore(opts.SessionTTL, s.NewSessionParts)
	return s
}

// NewSessionParts builds a fresh controller and renderer positioned on page 1
func (s *CatalogService) NewSessionParts() (*catalog.Controller, *HTMLRenderer) {
	renderer := NewHTMLRenderer()
	ctrl := catalog.NewController(
		catalog.NewState(s.feed, s.opts.PageSize, s.opts.LeadSlots),
		renderer,
		catalog.WithUnitLabels(s.opts.Labels),
		catalog.WithImageURL(s.imageURL),
	)
	return ctrl, renderer
}

// Sessions returns the session store
func (s *CatalogService) Sessions() *SessionStore {
	return s.sessions
}

// FetchErr returns the feed load error, if any
func (s *CatalogService) FetchErr() *catalog.FetchError {
	return s.feed.Err
}

// ProductCount returns the number of products in the feed
func (s *CatalogService) ProductCount() int {
	return len(s.feed.Products)
}

// ImageSource returns the primary image URL of the product with code
func (s *CatalogService) ImageSource(code string) (string, bool) {
	url, ok := s.images[code]
	return url, ok && url != ""
}

func (s *CatalogService) imageURL(p models.Product) string {
	if s.opts.Thumbnails && p.Code != "" {
		return "/images/" + p.Code + "/thumb"
	}
	return utils.ThumbnailURL(p.PrimaryImageURL)
}

// ShowPage renders the page named by label in the session.
// An empty label renders the current page. An invalid label keeps the
// current page, which is rendered with a flash message, and returns the
// ValidationError.
func (s *CatalogService) ShowPage(sess *Session, label string) (PageView, error) {
	sess.Lock()
	defer sess.Unlock()

	ctrl := sess.Controller()
	if s.feed.Err != nil || strings.TrimSpace(label) == "" {
		ctrl.Refresh()
		return sess.Renderer().View(), nil
	}

	err := ctrl.HandlePageClick(label)
	if err != nil {
		ctrl.Refresh()
	}
	view := sess.Renderer().View()
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		view.Flash = fmt.Sprintf("Страница %q не найдена", verr.Value)
	}
	return view, err
}

// HandleCardEvent applies a card event in the session and returns the redrawn card.
// On a ValidationError for a known card the returned card is the unchanged one.
func (s *CatalogService) HandleCardEvent(sess *Session, ev catalog.Event) (models.CardView, error) {
	sess.Lock()
	defer sess.Unlock()

	if s.feed.Err != nil {
		return models.CardView{}, s.feed.Err
	}

	err := sess.Controller().Dispatch(ev)
	card, ok := sess.Renderer().Card(ev.CardID)
	if !ok {
		if err == nil {
			err = &catalog.ValidationError{Field: "card", Value: ev.CardID, Reason: "no such product"}
		}
		return models.CardView{}, err
	}
	return card, err
}

// CurrentPage returns the page the session is on
func (s *CatalogService) CurrentPage(sess *Session) int {
	sess.Lock()
	defer sess.Unlock()
	return sess.Controller().State().Page()
}

// PrintView renders page with default card state, independent of any session.
// It backs the print page loaded by the PDF exporter.
func (s *CatalogService) PrintView(page int) (PageView, error) {
	ctrl, renderer := s.NewSessionParts()
	if s.feed.Err != nil {
		ctrl.ShowPage(1)
		return renderer.View(), s.feed.Err
	}
	if err := ctrl.HandlePageClick(strconv.Itoa(page)); err != nil {
		return PageView{}, err
	}
	view := renderer.View()
	view.Print = true
	return view, nil
}
