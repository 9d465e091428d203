// backend-go/internal/repository/catalog_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

type CatalogRepository interface {
	ListVariants(ctx context.Context, shopID string) ([]domain.VariantRecord, error)
	CountVariants(ctx context.Context, shopID string) (int, error)
	ListShops(ctx context.Context) ([]string, error)
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListVariants(ctx context.Context, shopID string) ([]domain.VariantRecord, error) {
	query := `
        SELECT
            variant_id, product_id, title, variant_title,
            COALESCE(sku, '') as sku, COALESCE(barcode, '') as barcode,
            COALESCE(vendor, '') as vendor, COALESCE(product_type, '') as product_type,
            inventory_qty as inventory_quantity, price, compare_at_price, created_at
        FROM product_variants
        WHERE shop_id = $1
        ORDER BY variant_id
    `

	var variants []domain.VariantRecord
	if err := r.db.SelectContext(ctx, &variants, query, shopID); err != nil {
		return nil, fmt.Errorf("error listing variants: %w", err)
	}

	return variants, nil
}

func (r *catalogRepository) CountVariants(ctx context.Context, shopID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM product_variants WHERE shop_id = $1`, shopID)
	if err != nil {
		return 0, fmt.Errorf("error counting variants: %w", err)
	}
	return count, nil
}

func (r *catalogRepository) ListShops(ctx context.Context) ([]string, error) {
	var shops []string
	err := r.db.SelectContext(ctx, &shops, `SELECT DISTINCT shop_id FROM product_variants ORDER BY shop_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing shops: %w", err)
	}
	return shops, nil
}
