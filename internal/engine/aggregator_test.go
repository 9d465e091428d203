package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// testCatalog builds a small catalog covering every stock status bucket.
func testCatalog() ([]domain.VariantRecord, map[int64]domain.SalesAggregate, map[int64]float64) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	catalog := []domain.VariantRecord{
		{VariantID: 1, ProductID: 10, Title: "Trail Shoe", VariantTitle: "42", SKU: "SHOE-42", Vendor: "Acme", ProductType: "Footwear", InventoryQty: 0, Price: 120, CreatedAt: base},
		{VariantID: 2, ProductID: 10, Title: "Trail Shoe", VariantTitle: "43", SKU: "SHOE-43", Vendor: "Acme", ProductType: "Footwear", InventoryQty: 5, Price: 120, CreatedAt: base.AddDate(0, 0, 1)},
		{VariantID: 3, ProductID: 20, Title: "Wool Sock", VariantTitle: "L", SKU: "SOCK-L", Barcode: "888001", Vendor: "Moda", ProductType: "Apparel", InventoryQty: 60, Price: 12, CreatedAt: base.AddDate(0, 0, 2)},
		{VariantID: 4, ProductID: 20, Title: "Wool Sock", VariantTitle: "XL", SKU: "SOCK-XL", Vendor: "Moda", ProductType: "Apparel", InventoryQty: 500, Price: 12, CreatedAt: base.AddDate(0, 0, 3)},
	}

	sales := map[int64]domain.SalesAggregate{
		1: {VariantID: 1, Quantity: 45, Revenue: 5400, Orders: 40},
		2: {VariantID: 2, Quantity: 90, Revenue: 10800, Orders: 85},
		3: {VariantID: 3, Quantity: 180, Revenue: 2160, Orders: 150},
		// Variant 4 has no sales entry at all: dead stock.
	}

	costs := map[int64]float64{
		1: 60,
		2: 60,
		3: 4,
		4: 4,
	}

	return catalog, sales, costs
}

func TestComputeLevelsSummaryCounts(t *testing.T) {
	e := New(DefaultConfig())
	catalog, sales, costs := testCatalog()

	result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{})

	require.Len(t, result.Variants, 4)
	assert.Equal(t, 4, result.Summary.TotalVariants)
	assert.Equal(t, 1, result.Summary.StockStatus.OutOfStock)
	assert.Equal(t, 1, result.Summary.StockStatus.CriticalLow)
	assert.Equal(t, 1, result.Summary.StockStatus.Normal)
	assert.Equal(t, 1, result.Summary.StockStatus.Overstocked)
	assert.Equal(t, 1, result.Summary.Velocity.DeadStock)
	assert.Equal(t, 1, result.Summary.ActionsNeeded.UrgentReorder)
	assert.Equal(t, 1, result.Summary.ActionsNeeded.Liquidate)

	// Dead stock value comes from variant 4 only: 500 units at cost 4.
	assert.InDelta(t, 2000.0, result.Summary.DeadStockValue, 1e-9)

	// Default sort is priority descending; the stockout leads.
	assert.Equal(t, int64(1), result.Variants[0].VariantID)
}

func TestComputeLevelsEmptyCatalog(t *testing.T) {
	e := New(DefaultConfig())

	result := e.ComputeLevels(nil, nil, nil, domain.LevelsFilter{})

	assert.Empty(t, result.Variants)
	assert.Equal(t, domain.InventorySummary{}, result.Summary)
}

func TestComputeLevelsMissingCostAndSalesDefaults(t *testing.T) {
	e := New(DefaultConfig())
	catalog := []domain.VariantRecord{{VariantID: 7, ProductID: 70, Title: "Mystery Mug", InventoryQty: 10, Price: 15}}

	result := e.ComputeLevels(catalog, nil, nil, domain.LevelsFilter{})

	require.Len(t, result.Variants, 1)
	v := result.Variants[0]
	assert.Nil(t, v.CostPerItem)
	assert.Zero(t, v.StockValue)
	assert.Zero(t, v.ProfitMargin)
	assert.Zero(t, v.SalesVelocity)
	assert.True(t, v.IsDeadStock)
}

func TestComputeLevelsFilters(t *testing.T) {
	e := New(DefaultConfig())
	catalog, sales, costs := testCatalog()

	t.Run("by stock status", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{StockStatus: "out_of_stock"})
		require.Len(t, result.Variants, 1)
		assert.Equal(t, int64(1), result.Variants[0].VariantID)
		assert.Equal(t, 1, result.Summary.TotalVariants)
	})

	t.Run("by vendor", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{Vendor: "Moda"})
		assert.Len(t, result.Variants, 2)
	})

	t.Run("needs action", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{NeedsAction: true})
		for _, v := range result.Variants {
			assert.Contains(t, []domain.Action{domain.ActionUrgentReorder, domain.ActionReorderNow, domain.ActionLiquidate}, v.ActionRequired)
		}
		assert.Len(t, result.Variants, 3)
	})

	t.Run("search matches title sku and barcode case-insensitively", func(t *testing.T) {
		byTitle := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{Search: "wool"})
		assert.Len(t, byTitle.Variants, 2)

		bySKU := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{Search: "shoe-42"})
		assert.Len(t, bySKU.Variants, 1)

		byBarcode := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{Search: "888001"})
		assert.Len(t, byBarcode.Variants, 1)
	})

	t.Run("unknown values are ignored", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{StockStatus: "all", SortBy: "bogus"})
		assert.Len(t, result.Variants, 4)
	})
}

func TestComputeLevelsSortKeys(t *testing.T) {
	e := New(DefaultConfig())
	catalog, sales, costs := testCatalog()

	t.Run("velocity descending", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{SortBy: SortByVelocity})
		for i := 1; i < len(result.Variants); i++ {
			assert.GreaterOrEqual(t, result.Variants[i-1].SalesVelocity, result.Variants[i].SalesVelocity)
		}
	})

	t.Run("days remaining ascending", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{SortBy: SortByDaysRemaining})
		for i := 1; i < len(result.Variants); i++ {
			assert.LessOrEqual(t, result.Variants[i-1].DaysRemaining, result.Variants[i].DaysRemaining)
		}
	})

	t.Run("title alphabetical", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{SortBy: SortByTitle})
		assert.Equal(t, "Trail Shoe", result.Variants[0].Title)
	})

	t.Run("created_at newest first", func(t *testing.T) {
		result := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{SortBy: SortByCreatedAt})
		assert.Equal(t, int64(4), result.Variants[0].VariantID)
	})
}

func TestComputeLevelsDeterministic(t *testing.T) {
	e := New(DefaultConfig())
	catalog, sales, costs := testCatalog()

	first := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{})
	second := e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{})

	assert.Equal(t, first, second)
}

func TestComputeLevelsDoesNotMutateInputs(t *testing.T) {
	e := New(DefaultConfig())
	catalog, sales, costs := testCatalog()
	originalQty := catalog[2].InventoryQty

	_ = e.ComputeLevels(catalog, sales, costs, domain.LevelsFilter{SortBy: SortByTitle})

	assert.Equal(t, originalQty, catalog[2].InventoryQty)
	assert.Equal(t, int64(1), catalog[0].VariantID)
}
