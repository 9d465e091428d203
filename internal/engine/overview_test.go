package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

func TestOverviewKPIs(t *testing.T) {
	e := New(DefaultConfig())

	summary := domain.InventorySummary{
		TotalVariants:   10,
		TotalStockValue: 5000,
		DeadStockValue:  500,
		StockStatus: domain.StockStatusBreakdown{
			OutOfStock:  1,
			CriticalLow: 1,
			Normal:      3,
			Healthy:     3,
			Overstocked: 2,
		},
		Velocity: domain.VelocityBreakdown{
			FastMoving: 2,
			SlowMoving: 2,
		},
		ReorderNeededCount: 3,
	}
	alerts := domain.AlertSummary{CriticalAlerts: 1, HighPriority: 1}
	turnover := domain.TurnoverSummary{AvgTurnover: 9}

	result := e.Overview(summary, alerts, turnover)
	kpis := result.KPIs

	assert.Equal(t, 10, kpis.TotalVariants)
	assert.InDelta(t, 5000.0, kpis.TotalStockValue, 1e-9)
	assert.InDelta(t, 9.0, kpis.AvgInventoryTurnover, 1e-9)
	assert.Equal(t, 2, kpis.StockoutRiskProducts)
	assert.Equal(t, 2, kpis.UrgentActionsNeeded)
	assert.Equal(t, 3, kpis.ReorderNeeded)
	assert.Equal(t, 2, kpis.FastMovers)
	assert.Equal(t, 2, kpis.SlowMovers)
	assert.InDelta(t, 60.0, kpis.HealthyStockPercentage, 1e-9)
	assert.InDelta(t, 10.0, kpis.DeadStockPercentage, 1e-9)
	// One stockout at the flat per-variant estimate.
	assert.InDelta(t, 100.0, kpis.PotentialLostSales, 1e-9)
	// Dead stock value plus the per-variant overstock estimate.
	assert.InDelta(t, 600.0, kpis.OptimizationOpportunity, 1e-9)

	assert.Equal(t, summary.StockStatus, result.StockDistribution)
	assert.Equal(t, alerts, result.AlertSummary)
}

func TestOverviewRecommendations(t *testing.T) {
	e := New(DefaultConfig())

	summary := domain.InventorySummary{
		TotalVariants:   10,
		TotalStockValue: 5000,
		DeadStockValue:  500,
		StockStatus: domain.StockStatusBreakdown{
			OutOfStock: 1, CriticalLow: 1, Normal: 3, Healthy: 3, Overstocked: 2,
		},
		ReorderNeededCount: 3,
	}
	alerts := domain.AlertSummary{CriticalAlerts: 1, HighPriority: 1}
	turnover := domain.TurnoverSummary{AvgTurnover: 9}

	recs := e.Overview(summary, alerts, turnover).Recommendations

	types := make([]string, 0, len(recs))
	for _, r := range recs {
		types = append(types, r.Type)
	}
	// Critical alerts, sub-70% healthy stock, and a fifth of the catalog
	// needing reorders. Turnover of 9 and 10% dead stock stay quiet.
	assert.Equal(t, []string{"urgent", "strategy", "process"}, types)

	require.NotEmpty(t, recs)
	assert.Equal(t, "Immediate Action Required", recs[0].Title)
	assert.Contains(t, recs[0].Description, "1 products are critically low or out of stock")
}

func TestOverviewRecommendationsDeadStockAndTurnover(t *testing.T) {
	e := New(DefaultConfig())

	summary := domain.InventorySummary{
		TotalVariants:   10,
		TotalStockValue: 1000,
		DeadStockValue:  300,
		StockStatus:     domain.StockStatusBreakdown{Healthy: 8, Normal: 2},
	}

	recs := e.Overview(summary, domain.AlertSummary{}, domain.TurnoverSummary{AvgTurnover: 2}).Recommendations

	types := make([]string, 0, len(recs))
	for _, r := range recs {
		types = append(types, r.Type)
	}
	assert.Equal(t, []string{"optimization", "performance"}, types)
	assert.Contains(t, recs[0].Description, "30.0% of inventory value")
}

func TestOverviewHealthScore(t *testing.T) {
	e := New(DefaultConfig())

	t.Run("mixed store", func(t *testing.T) {
		summary := domain.InventorySummary{
			TotalVariants:   10,
			TotalStockValue: 5000,
			DeadStockValue:  500,
			StockStatus: domain.StockStatusBreakdown{
				OutOfStock: 1, CriticalLow: 1, Normal: 3, Healthy: 3, Overstocked: 2,
			},
		}
		result := e.Overview(summary, domain.AlertSummary{}, domain.TurnoverSummary{AvgTurnover: 9})
		// 100 - 6 stockout - 10 dead + 10 turnover + 3 healthy-stock bonus.
		assert.Equal(t, 97, result.HealthScore)
	})

	t.Run("empty store", func(t *testing.T) {
		result := e.Overview(domain.InventorySummary{}, domain.AlertSummary{}, domain.TurnoverSummary{})
		// 100 - 15 for stalled turnover - 15 for zero healthy stock.
		assert.Equal(t, 70, result.HealthScore)
	})

	t.Run("worst case clamps at zero", func(t *testing.T) {
		summary := domain.InventorySummary{
			TotalVariants:   10,
			TotalStockValue: 100,
			DeadStockValue:  100,
			StockStatus:     domain.StockStatusBreakdown{OutOfStock: 10},
		}
		result := e.Overview(summary, domain.AlertSummary{}, domain.TurnoverSummary{})
		assert.Equal(t, 10, result.HealthScore)
	})

	t.Run("bounded", func(t *testing.T) {
		summary := domain.InventorySummary{
			TotalVariants: 10,
			StockStatus:   domain.StockStatusBreakdown{Healthy: 10},
		}
		result := e.Overview(summary, domain.AlertSummary{}, domain.TurnoverSummary{AvgTurnover: 20})
		assert.LessOrEqual(t, result.HealthScore, 100)
		assert.GreaterOrEqual(t, result.HealthScore, 0)
	})
}
