package engine

import (
	"fmt"
	"math"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// Rough dollar estimates for the opportunity KPIs. These feed a dashboard
// hint, not an accounting report.
const (
	estimatedLostSalePerStockout = 100
	estimatedCostPerOverstocked  = 50
)

// Overview combines the levels summary, alert summary and turnover summary
// into the headline KPI block, recommendation list and 0-100 health score.
func (e *Engine) Overview(summary domain.InventorySummary, alerts domain.AlertSummary, turnover domain.TurnoverSummary) domain.OverviewResult {
	kpis := domain.OverviewKPIs{
		TotalVariants:        summary.TotalVariants,
		TotalStockValue:      summary.TotalStockValue,
		AvgInventoryTurnover: turnover.AvgTurnover,
		StockoutRiskProducts: summary.StockStatus.OutOfStock + summary.StockStatus.CriticalLow,
		DeadStockValue:       summary.DeadStockValue,
		UrgentActionsNeeded:  alerts.CriticalAlerts + alerts.HighPriority,
		ReorderNeeded:        summary.ReorderNeededCount,
		FastMovers:           summary.Velocity.FastMoving,
		SlowMovers:           summary.Velocity.SlowMoving,
		PotentialLostSales:   float64(summary.StockStatus.OutOfStock) * estimatedLostSalePerStockout,
		OptimizationOpportunity: summary.DeadStockValue +
			float64(summary.StockStatus.Overstocked)*estimatedCostPerOverstocked,
	}

	if summary.TotalVariants > 0 {
		healthy := summary.StockStatus.Healthy + summary.StockStatus.Normal
		kpis.HealthyStockPercentage = roundPct(float64(healthy) / float64(summary.TotalVariants) * 100)
	}
	if summary.TotalStockValue > 0 {
		kpis.DeadStockPercentage = roundPct(summary.DeadStockValue / summary.TotalStockValue * 100)
	}

	return domain.OverviewResult{
		KPIs:                 kpis,
		StockDistribution:    summary.StockStatus,
		VelocityDistribution: summary.Velocity,
		AlertSummary:         alerts,
		TurnoverSummary:      turnover,
		Recommendations:      e.recommendations(summary, alerts, kpis),
		HealthScore:          healthScore(kpis),
	}
}

func (e *Engine) recommendations(summary domain.InventorySummary, alerts domain.AlertSummary, kpis domain.OverviewKPIs) []domain.Recommendation {
	recs := []domain.Recommendation{}

	if alerts.CriticalAlerts > 0 {
		recs = append(recs, domain.Recommendation{
			Type:        "urgent",
			Title:       "Immediate Action Required",
			Description: fmt.Sprintf("%d products are critically low or out of stock", alerts.CriticalAlerts),
			Action:      "Review urgent reorder alerts and place emergency orders",
			Priority:    "high",
			Impact:      "Prevent lost sales and customer dissatisfaction",
		})
	}

	if kpis.DeadStockPercentage > 10 {
		recs = append(recs, domain.Recommendation{
			Type:        "optimization",
			Title:       "Dead Stock Clean-up",
			Description: fmt.Sprintf("%.1f%% of inventory value is tied up in dead stock", kpis.DeadStockPercentage),
			Action:      "Create promotional campaigns or bundles to move dead inventory",
			Priority:    "medium",
			Impact:      fmt.Sprintf("Free up $%.0f in working capital", kpis.DeadStockValue),
		})
	}

	if kpis.AvgInventoryTurnover < 6 {
		recs = append(recs, domain.Recommendation{
			Type:        "performance",
			Title:       "Improve Inventory Turnover",
			Description: fmt.Sprintf("Average turnover of %.1f is below optimal levels", kpis.AvgInventoryTurnover),
			Action:      "Focus on fast-moving products and reduce slow-moving inventory",
			Priority:    "medium",
			Impact:      "Increase cash flow and reduce carrying costs",
		})
	}

	if kpis.HealthyStockPercentage < 70 {
		recs = append(recs, domain.Recommendation{
			Type:        "strategy",
			Title:       "Improve Stock Health",
			Description: fmt.Sprintf("Only %.1f%% of products have healthy stock levels", kpis.HealthyStockPercentage),
			Action:      "Implement better demand forecasting and reorder point calculations",
			Priority:    "medium",
			Impact:      "Reduce stockouts and overstock situations",
		})
	}

	if float64(kpis.ReorderNeeded) > float64(summary.TotalVariants)*0.2 {
		recs = append(recs, domain.Recommendation{
			Type:        "process",
			Title:       "Automate Reorders",
			Description: fmt.Sprintf("%d products need reordering", kpis.ReorderNeeded),
			Action:      "Set up automated reorder alerts or integrate with suppliers",
			Priority:    "low",
			Impact:      "Reduce manual work and prevent stockouts",
		})
	}

	return recs
}

// healthScore condenses the KPI block into a single 0-100 number. Starts at
// 100, deducts for stockout exposure and dead stock, and adjusts for
// turnover and overall stock health.
func healthScore(kpis domain.OverviewKPIs) int {
	score := 100.0

	total := kpis.TotalVariants
	if total < 1 {
		total = 1
	}
	score -= float64(kpis.StockoutRiskProducts) / float64(total) * 30

	score -= math.Min(30, kpis.DeadStockPercentage)

	if kpis.AvgInventoryTurnover > 8 {
		score += 10
	} else if kpis.AvgInventoryTurnover < 4 {
		score -= 15
	}

	score += (kpis.HealthyStockPercentage - 50) * 0.3

	return int(clamp(math.Round(score), 0, 100))
}

func roundPct(v float64) float64 {
	return math.Round(v*10) / 10
}
