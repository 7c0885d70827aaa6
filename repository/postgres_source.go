package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"product-catalog/catalog"
	"product-catalog/models"
)

// productsQuery reads the feed in catalog order. The table mirrors the JSON feed.
const productsQuery = `
	SELECT
		code,
		COALESCE(primary_image_url, '') AS primary_image_url,
		COALESCE(title, '') AS title,
		COALESCE(assoc_products, '') AS assoc_products,
		COALESCE(price_gold, 0) AS price_gold,
		COALESCE(price_retail, 0) AS price_retail,
		COALESCE(price_gold_alt, 0) AS price_gold_alt,
		COALESCE(price_retail_alt, 0) AS price_retail_alt,
		COALESCE(unit, '') AS unit,
		COALESCE(unit_alt, '') AS unit_alt,
		COALESCE(unit_full, '') AS unit_full,
		COALESCE(unit_ratio, 0) AS unit_ratio,
		COALESCE(unit_ratio_alt, 0) AS unit_ratio_alt,
		COALESCE(product_id, '') AS product_id
	FROM products
	WHERE is_active = true
	ORDER BY position ASC, code ASC
`

// PostgresProductSource reads the product feed from the products table
type PostgresProductSource struct {
	db *sql.DB
}

// NewPostgresProductSource creates a new PostgresProductSource
func NewPostgresProductSource(db *sql.DB) *PostgresProductSource {
	return &PostgresProductSource{db: db}
}

// Ensure PostgresProductSource implements catalog.ProductSource
var _ catalog.ProductSource = (*PostgresProductSource)(nil)

// Describe returns the feed location
func (s *PostgresProductSource) Describe() string {
	return "postgres table products"
}

// LoadProducts reads all active products
func (s *PostgresProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, productsQuery)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.Describe(), Err: fmt.Errorf("failed to query products: %w", err)}
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.Code,
			&p.PrimaryImageURL,
			&p.Title,
			&p.AssocProducts,
			&p.PriceGold,
			&p.PriceRetail,
			&p.PriceGoldAlt,
			&p.PriceRetailAlt,
			&p.Unit,
			&p.UnitAlt,
			&p.UnitFull,
			&p.UnitRatio,
			&p.UnitRatioAlt,
			&p.ProductID,
		)
		if err != nil {
			return nil, &catalog.FetchError{Source: s.Describe(), Err: fmt.Errorf("failed to scan product: %w", err)}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &catalog.FetchError{Source: s.Describe(), Err: fmt.Errorf("failed to iterate products: %w", err)}
	}

	log.Ctx(ctx).Info().Int("count", len(products)).Msg("LoadProducts: products read from database")
	return products, nil
}
