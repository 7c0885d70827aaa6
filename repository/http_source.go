package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"product-catalog/catalog"
	"product-catalog/models"
)

// HTTPProductSource fetches the product feed from a static URL
type HTTPProductSource struct {
	url    string
	client *http.Client
}

// NewHTTPProductSource creates a new HTTPProductSource.
// A nil client uses a client with the given timeout.
func NewHTTPProductSource(url string, client *http.Client, timeout time.Duration) *HTTPProductSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPProductSource{url: url, client: client}
}

// Ensure HTTPProductSource implements catalog.ProductSource
var _ catalog.ProductSource = (*HTTPProductSource)(nil)

// Describe returns the feed location
func (s *HTTPProductSource) Describe() string {
	return s.url
}

// LoadProducts performs a single GET of the feed; there is no retry
func (s *HTTPProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.url, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &catalog.FetchError{Source: s.url, Err: fmt.Errorf("feed endpoint returned status %d", resp.StatusCode)}
	}

	products, err := decodeProducts(resp.Body)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.url, Err: err}
	}

	log.Ctx(ctx).Info().Str("url", s.url).Int("count", len(products)).Msg("LoadProducts: feed fetched")
	return products, nil
}
