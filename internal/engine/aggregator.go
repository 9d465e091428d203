package engine

import (
	"sort"
	"strings"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// Sort keys accepted by ComputeLevels. Unknown keys fall back to priority.
const (
	SortByPriority      = "stock_status"
	SortByVelocity      = "velocity"
	SortByStockValue    = "stock_value"
	SortByTurnover      = "turnover"
	SortByDaysRemaining = "days_remaining"
	SortByTitle         = "title"
	SortByCreatedAt     = "created_at"
)

// ComputeLevels runs the variant calculator across the whole catalog, applies
// the filter set and sort key, and rolls the surviving variants into a
// store-wide summary. An empty catalog yields an all-zero summary, not an
// error.
func (e *Engine) ComputeLevels(catalog []domain.VariantRecord, sales map[int64]domain.SalesAggregate, costs map[int64]float64, filter domain.LevelsFilter) domain.LevelsResult {
	insights := make([]domain.VariantInsight, 0, len(catalog))

	for _, rec := range catalog {
		agg := sales[rec.VariantID]
		cost, hasCost := costs[rec.VariantID]

		insight := domain.VariantInsight{
			VariantRecord: rec,
			TotalSales:    agg.Quantity,
			TotalRevenue:  agg.Revenue,
			TotalOrders:   agg.Orders,
		}
		if hasCost {
			c := cost
			insight.CostPerItem = &c
		}
		insight.VariantAnalytics = e.CalculateVariant(rec, agg, cost)

		insights = append(insights, insight)
	}

	insights = applyFilter(insights, filter)
	sortInsights(insights, filter.SortBy)

	return domain.LevelsResult{
		Variants: insights,
		Summary:  e.Summarize(insights),
	}
}

// applyFilter narrows the insight set. Unknown or empty filter values are
// ignored rather than rejected.
func applyFilter(insights []domain.VariantInsight, filter domain.LevelsFilter) []domain.VariantInsight {
	filtered := insights

	if v := filter.StockStatus; v != "" && v != "all" {
		filtered = keep(filtered, func(i domain.VariantInsight) bool {
			return string(i.StockStatus) == v
		})
	}

	if v := filter.VelocityClass; v != "" && v != "all" {
		filtered = keep(filtered, func(i domain.VariantInsight) bool {
			return string(i.VelocityClass) == v
		})
	}

	if v := filter.ProductType; v != "" && v != "all" {
		filtered = keep(filtered, func(i domain.VariantInsight) bool {
			return i.ProductType == v
		})
	}

	if v := filter.Vendor; v != "" && v != "all" {
		filtered = keep(filtered, func(i domain.VariantInsight) bool {
			return i.Vendor == v
		})
	}

	if filter.NeedsAction {
		filtered = keep(filtered, func(i domain.VariantInsight) bool {
			switch i.ActionRequired {
			case domain.ActionUrgentReorder, domain.ActionReorderNow, domain.ActionLiquidate:
				return true
			}
			return false
		})
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		filtered = keep(filtered, func(i domain.VariantInsight) bool {
			return strings.Contains(strings.ToLower(i.Title), search) ||
				strings.Contains(strings.ToLower(i.SKU), search) ||
				strings.Contains(strings.ToLower(i.Barcode), search)
		})
	}

	return filtered
}

func keep(insights []domain.VariantInsight, pred func(domain.VariantInsight) bool) []domain.VariantInsight {
	out := insights[:0:0]
	for _, i := range insights {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}

// sortInsights orders the result set in place. Sorting is stable so equal
// keys preserve catalog order and repeated runs stay byte-identical.
func sortInsights(insights []domain.VariantInsight, sortBy string) {
	var less func(a, b domain.VariantInsight) bool

	switch sortBy {
	case SortByVelocity:
		less = func(a, b domain.VariantInsight) bool { return a.SalesVelocity > b.SalesVelocity }
	case SortByStockValue:
		less = func(a, b domain.VariantInsight) bool { return a.StockValue > b.StockValue }
	case SortByTurnover:
		less = func(a, b domain.VariantInsight) bool { return a.InventoryTurnover > b.InventoryTurnover }
	case SortByDaysRemaining:
		less = func(a, b domain.VariantInsight) bool { return a.DaysRemaining < b.DaysRemaining }
	case SortByTitle:
		less = func(a, b domain.VariantInsight) bool { return a.Title < b.Title }
	case SortByCreatedAt:
		less = func(a, b domain.VariantInsight) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b domain.VariantInsight) bool { return a.Priority > b.Priority }
	}

	sort.SliceStable(insights, func(i, j int) bool { return less(insights[i], insights[j]) })
}

// Summarize rolls a set of computed insights into an InventorySummary.
func (e *Engine) Summarize(insights []domain.VariantInsight) domain.InventorySummary {
	summary := domain.InventorySummary{TotalVariants: len(insights)}
	if len(insights) == 0 {
		return summary
	}

	var turnoverSum float64

	for _, i := range insights {
		summary.TotalStockValue += i.StockValue
		summary.TotalPotentialRevenue += i.PotentialRevenue
		turnoverSum += i.InventoryTurnover

		switch i.StockStatus {
		case domain.StockStatusOutOfStock:
			summary.StockStatus.OutOfStock++
		case domain.StockStatusCriticalLow:
			summary.StockStatus.CriticalLow++
		case domain.StockStatusLowStock:
			summary.StockStatus.LowStock++
		case domain.StockStatusNormal:
			summary.StockStatus.Normal++
		case domain.StockStatusHealthy:
			summary.StockStatus.Healthy++
		case domain.StockStatusOverstocked:
			summary.StockStatus.Overstocked++
		}

		switch i.VelocityClass {
		case domain.VelocityFastMoving:
			summary.Velocity.FastMoving++
		case domain.VelocityMediumMoving:
			summary.Velocity.MediumMoving++
		case domain.VelocitySlowMoving:
			summary.Velocity.SlowMoving++
		case domain.VelocityDeadStock:
			summary.Velocity.DeadStock++
		}

		switch i.ActionRequired {
		case domain.ActionUrgentReorder:
			summary.ActionsNeeded.UrgentReorder++
		case domain.ActionReorderNow:
			summary.ActionsNeeded.ReorderNow++
		case domain.ActionLiquidate:
			summary.ActionsNeeded.Liquidate++
		case domain.ActionDiscountOrBundle:
			summary.ActionsNeeded.DiscountOrBundle++
		case domain.ActionReduceOrders:
			summary.ActionsNeeded.ReduceOrders++
		case domain.ActionMonitor:
			summary.ActionsNeeded.Monitor++
		}

		if i.IsDeadStock {
			summary.DeadStockValue += i.StockValue
		}
		if i.NeedsReorder {
			summary.ReorderNeededCount++
		}
		if i.Priority >= e.cfg.HighPriorityScore {
			summary.HighPriorityCount++
		}
	}

	summary.AvgTurnover = turnoverSum / float64(len(insights))

	return summary
}
