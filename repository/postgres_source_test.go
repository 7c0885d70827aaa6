package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"product-catalog/catalog"
	"product-catalog/db"
)

// TestPostgresProductSource runs against a real database when TEST_DATABASE_URL is set
func TestPostgresProductSource(t *testing.T) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, connStr)
	require.NoError(t, err)
	defer conn.Close()
	// temp tables live on a single connection
	conn.SetMaxOpenConns(1)

	_, err = conn.ExecContext(ctx, `
		CREATE TEMP TABLE products (
			position int, code text, primary_image_url text, title text, assoc_products text,
			price_gold double precision, price_retail double precision,
			price_gold_alt double precision, price_retail_alt double precision,
			unit text, unit_alt text, unit_full text,
			unit_ratio double precision, unit_ratio_alt double precision,
			product_id text, is_active boolean
		)`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `
		INSERT INTO products (position, code, title, unit, unit_alt, unit_ratio_alt, product_id, is_active) VALUES
			(2, '0002', 'Second', 'шт.', 'шт.', 1, 'b', true),
			(1, '0001', 'First', 'упак.', 'м. кв.', 2.47, 'a', true),
			(3, '0003', 'Hidden', 'шт.', 'шт.', 1, 'c', false)`)
	require.NoError(t, err)

	products, err := NewPostgresProductSource(conn).LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "0001", products[0].Code)
	require.Equal(t, 2.47, products[0].UnitRatioAlt)
	require.Equal(t, "0002", products[1].Code)

	// an unreadable row fails the whole load instead of shrinking the catalog
	_, err = conn.ExecContext(ctx, `
		INSERT INTO products (position, code, title, unit, unit_alt, unit_ratio_alt, product_id, is_active) VALUES
			(4, NULL, 'Broken', 'шт.', 'шт.', 1, 'd', true)`)
	require.NoError(t, err)

	_, err = NewPostgresProductSource(conn).LoadProducts(ctx)
	var fetchErr *catalog.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Contains(t, fetchErr.Error(), "failed to scan product")
}
