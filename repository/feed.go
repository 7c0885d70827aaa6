package repository

import (
	"encoding/json"
	"fmt"
	"io"

	"product-catalog/models"
)

// maxFeedSize bounds how much of a feed is read into memory
const maxFeedSize = 32 << 20

// decodeProducts decodes a JSON array of products.
// Missing fields decode to zero values.
func decodeProducts(r io.Reader) ([]models.Product, error) {
	var products []models.Product
	if err := json.NewDecoder(io.LimitReader(r, maxFeedSize)).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product feed: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
