package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"product-catalog/catalog"
	"product-catalog/models"
)

// FileProductSource reads the product feed from a local JSON file
type FileProductSource struct {
	path string
}

// NewFileProductSource creates a new FileProductSource
func NewFileProductSource(path string) *FileProductSource {
	return &FileProductSource{path: path}
}

// Ensure FileProductSource implements catalog.ProductSource
var _ catalog.ProductSource = (*FileProductSource)(nil)

// Describe returns the feed location
func (s *FileProductSource) Describe() string {
	return "file " + s.path
}

// LoadProducts reads and decodes the feed file
func (s *FileProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.Describe(), Err: fmt.Errorf("failed to open feed: %w", err)}
	}
	defer f.Close()

	products, err := decodeProducts(f)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.Describe(), Err: err}
	}

	log.Ctx(ctx).Info().Str("path", s.path).Int("count", len(products)).Msg("LoadProducts: feed file loaded")
	return products, nil
}
