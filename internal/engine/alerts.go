package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// Alert priorities from the trigger table. Alerts of different types can fire
// for the same variant simultaneously.
const (
	priorityOutOfStock    = 100
	priorityCriticalLow   = 90
	priorityHighValueRisk = 85
	priorityReorderNeeded = 70
	priorityDeadStock     = 60
	priorityOverstock     = 50
	prioritySlowMoving    = 40
)

// GenerateAlerts scans computed insights and emits one alert per triggered
// condition, restricted to the requested type groups ("all", "stock",
// "dead_stock", "overstock", "high_value"). Alerts are sorted by priority
// descending; now stamps every alert so a single request is self-consistent.
func (e *Engine) GenerateAlerts(insights []domain.VariantInsight, groups []string, now time.Time) domain.AlertsResult {
	include := alertGroupSet(groups)
	alerts := make([]domain.Alert, 0)

	for _, ins := range insights {
		if include[domain.AlertGroupStock] {
			switch {
			case ins.StockStatus == domain.StockStatusOutOfStock:
				a := e.baseAlert(ins, domain.AlertOutOfStock, domain.SeverityCritical, priorityOutOfStock, now)
				a.Message = fmt.Sprintf("%s is out of stock", ins.Title)
				a.RecommendedAction = domain.ActionUrgentReorder
				alerts = append(alerts, a)

			case ins.StockStatus == domain.StockStatusCriticalLow:
				a := e.baseAlert(ins, domain.AlertCriticalLow, domain.SeverityHigh, priorityCriticalLow, now)
				a.Message = fmt.Sprintf("%s has critically low stock (%d days remaining)", ins.Title, ins.DaysRemaining)
				a.DaysRemaining = intPtr(ins.DaysRemaining)
				a.RecommendedAction = domain.ActionReorderNow
				alerts = append(alerts, a)

			case ins.NeedsReorder:
				a := e.baseAlert(ins, domain.AlertReorderNeeded, domain.SeverityMedium, priorityReorderNeeded, now)
				a.Message = fmt.Sprintf("%s has reached reorder point", ins.Title)
				a.ReorderPoint = intPtr(ins.ReorderPoint)
				a.ReorderQuantity = intPtr(ins.ReorderQuantity)
				a.RecommendedAction = domain.ActionReorderNow
				alerts = append(alerts, a)
			}
		}

		if include[domain.AlertGroupDeadStock] {
			switch {
			case ins.IsDeadStock:
				a := e.baseAlert(ins, domain.AlertDeadStock, domain.SeverityMedium, priorityDeadStock, now)
				a.Message = fmt.Sprintf("%s is dead stock with $%.2f tied up", ins.Title, ins.StockValue)
				a.StockValue = floatPtr(ins.StockValue)
				a.RecommendedAction = domain.ActionLiquidate
				alerts = append(alerts, a)

			case ins.IsSlowMoving:
				a := e.baseAlert(ins, domain.AlertSlowMoving, domain.SeverityLow, prioritySlowMoving, now)
				a.Message = fmt.Sprintf("%s is moving slowly (%.2f units/day)", ins.Title, ins.SalesVelocity)
				a.SalesVelocity = floatPtr(ins.SalesVelocity)
				a.RecommendedAction = domain.ActionDiscountOrBundle
				alerts = append(alerts, a)
			}
		}

		if include[domain.AlertGroupOverstock] && ins.ExcessRisk > e.cfg.OverstockExcessRisk {
			a := e.baseAlert(ins, domain.AlertOverstock, domain.SeverityMedium, priorityOverstock, now)
			a.Message = fmt.Sprintf("%s is overstocked with %d days of inventory", ins.Title, ins.DaysRemaining)
			a.ExcessRisk = floatPtr(ins.ExcessRisk)
			a.DaysRemaining = intPtr(ins.DaysRemaining)
			a.RecommendedAction = domain.ActionReduceOrders
			alerts = append(alerts, a)
		}

		if include[domain.AlertGroupHighValue] &&
			ins.StockoutRisk > e.cfg.HighValueStockoutRisk && ins.StockValue > e.cfg.HighValueStockValue {
			a := e.baseAlert(ins, domain.AlertHighValueRisk, domain.SeverityHigh, priorityHighValueRisk, now)
			a.Message = fmt.Sprintf("High-value product %s at risk of stockout ($%.2f inventory value)", ins.Title, ins.StockValue)
			a.StockoutRisk = floatPtr(ins.StockoutRisk)
			a.StockValue = floatPtr(ins.StockValue)
			a.RecommendedAction = domain.ActionUrgentReorder
			alerts = append(alerts, a)
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Priority > alerts[j].Priority })

	return domain.AlertsResult{
		Alerts:  alerts,
		Summary: summarizeAlerts(alerts),
	}
}

func (e *Engine) baseAlert(ins domain.VariantInsight, typ domain.AlertType, sev domain.AlertSeverity, priority float64, now time.Time) domain.Alert {
	return domain.Alert{
		Type:         typ,
		Severity:     sev,
		ProductID:    ins.ProductID,
		VariantID:    ins.VariantID,
		Title:        ins.Title,
		VariantTitle: ins.VariantTitle,
		CurrentStock: ins.InventoryQty,
		Priority:     priority,
		CreatedAt:    now,
	}
}

// alertGroupSet expands the requested group names. Unknown names are ignored;
// an empty request means everything.
func alertGroupSet(groups []string) map[string]bool {
	include := map[string]bool{}
	all := len(groups) == 0
	for _, g := range groups {
		switch g {
		case domain.AlertGroupAll:
			all = true
		case domain.AlertGroupStock, domain.AlertGroupDeadStock, domain.AlertGroupOverstock, domain.AlertGroupHighValue:
			include[g] = true
		}
	}
	if all {
		include[domain.AlertGroupStock] = true
		include[domain.AlertGroupDeadStock] = true
		include[domain.AlertGroupOverstock] = true
		include[domain.AlertGroupHighValue] = true
	}
	return include
}

func summarizeAlerts(alerts []domain.Alert) domain.AlertSummary {
	summary := domain.AlertSummary{TotalAlerts: len(alerts)}

	for _, a := range alerts {
		switch a.Severity {
		case domain.SeverityCritical:
			summary.CriticalAlerts++
		case domain.SeverityHigh:
			summary.HighPriority++
		case domain.SeverityMedium:
			summary.MediumPriority++
		case domain.SeverityLow:
			summary.LowPriority++
		}

		switch a.Type {
		case domain.AlertOutOfStock:
			summary.ByType.OutOfStock++
		case domain.AlertCriticalLow:
			summary.ByType.CriticalLow++
		case domain.AlertReorderNeeded:
			summary.ByType.ReorderNeeded++
		case domain.AlertDeadStock:
			summary.ByType.DeadStock++
			if a.StockValue != nil {
				summary.TotalDeadStockValue += *a.StockValue
			}
		case domain.AlertSlowMoving:
			summary.ByType.SlowMoving++
		case domain.AlertOverstock:
			summary.ByType.Overstock++
		case domain.AlertHighValueRisk:
			summary.ByType.HighValueRisk++
		}
	}

	return summary
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
