// backend-go/internal/repository/cost_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
	"github.com/storesight/inventory-analytics/backend-go/internal/repository/postgres"
)

type CostRepository interface {
	GetCosts(ctx context.Context, shopID string) (map[int64]float64, error)
	UpsertCosts(ctx context.Context, shopID string, entries []domain.CostEntry) (int, error)
}

type costRepository struct {
	db *postgres.DB
}

func NewCostRepository(db *postgres.DB) CostRepository {
	return &costRepository{db: db}
}

func (r *costRepository) GetCosts(ctx context.Context, shopID string) (map[int64]float64, error) {
	query := `
        SELECT variant_id, cost_per_item
        FROM variant_costs
        WHERE shop_id = $1
    `

	rows, err := r.db.QueryxContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("error getting variant costs: %w", err)
	}
	defer rows.Close()

	costs := make(map[int64]float64)
	for rows.Next() {
		var variantID int64
		var cost float64
		if err := rows.Scan(&variantID, &cost); err != nil {
			return nil, fmt.Errorf("error scanning variant cost: %w", err)
		}
		costs[variantID] = cost
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variant costs: %w", err)
	}

	return costs, nil
}

// UpsertCosts writes all entries in a single transaction and returns how many
// rows were written. Either every entry lands or none do.
func (r *costRepository) UpsertCosts(ctx context.Context, shopID string, entries []domain.CostEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `
        INSERT INTO variant_costs (shop_id, variant_id, cost_per_item, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (shop_id, variant_id)
        DO UPDATE SET cost_per_item = EXCLUDED.cost_per_item, updated_at = NOW()
    `

	var written int
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("could not prepare cost upsert: %w", err)
		}
		defer stmt.Close()

		for _, entry := range entries {
			if _, err := stmt.ExecContext(ctx, shopID, entry.VariantID, entry.CostPerItem); err != nil {
				return fmt.Errorf("could not upsert cost for variant %d: %w", entry.VariantID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}
