// backend-go/internal/repository/sales_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

type SalesRepository interface {
	GetSalesAggregates(ctx context.Context, shopID string, windowDays int) (map[int64]domain.SalesAggregate, error)
}

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) SalesRepository {
	return &salesRepository{db: db}
}

// GetSalesAggregates sums ordered units, revenue and distinct orders per
// variant over the trailing window. Variants with no sales simply have no row.
func (r *salesRepository) GetSalesAggregates(ctx context.Context, shopID string, windowDays int) (map[int64]domain.SalesAggregate, error) {
	if windowDays <= 0 {
		windowDays = 90
	}

	query := `
        SELECT
            variant_id,
            COALESCE(SUM(quantity), 0) as quantity,
            COALESCE(SUM(quantity * price), 0) as revenue,
            COUNT(DISTINCT order_id) as orders
        FROM order_line_items
        WHERE shop_id = $1
          AND ordered_at >= NOW() - ($2 || ' days')::interval
        GROUP BY variant_id
    `

	var rows []domain.SalesAggregate
	if err := r.db.SelectContext(ctx, &rows, query, shopID, windowDays); err != nil {
		return nil, fmt.Errorf("error aggregating sales: %w", err)
	}

	aggregates := make(map[int64]domain.SalesAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.VariantID] = row
	}

	return aggregates, nil
}
