package engine

import (
	"sort"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

const performerListSize = 5

// AnalyzeTurnover groups variant insights by parent product, averages their
// turnover, and ranks products from best to worst capital efficiency.
func (e *Engine) AnalyzeTurnover(insights []domain.VariantInsight) domain.TurnoverResult {
	if len(insights) == 0 {
		return domain.TurnoverResult{Products: []domain.ProductTurnover{}}
	}

	groups := make(map[int64]*domain.ProductTurnover)
	variants := make(map[int64][]domain.VariantInsight)
	order := make([]int64, 0)

	for _, insight := range insights {
		group, ok := groups[insight.ProductID]
		if !ok {
			group = &domain.ProductTurnover{
				ProductID:   insight.ProductID,
				Title:       insight.Title,
				ProductType: insight.ProductType,
				Vendor:      insight.Vendor,
			}
			groups[insight.ProductID] = group
			order = append(order, insight.ProductID)
		}
		group.VariantsCount++
		group.TotalStockValue += insight.StockValue
		group.TotalRevenue += insight.TotalRevenue
		variants[insight.ProductID] = append(variants[insight.ProductID], insight)
	}

	products := make([]domain.ProductTurnover, 0, len(order))
	for _, productID := range order {
		group := groups[productID]
		members := variants[productID]

		var turnoverSum float64
		best, worst := members[0], members[0]
		for _, v := range members {
			turnoverSum += v.InventoryTurnover
			if v.InventoryTurnover > best.InventoryTurnover {
				best = v
			}
			if v.InventoryTurnover < worst.InventoryTurnover {
				worst = v
			}
		}

		group.AvgTurnover = turnoverSum / float64(len(members))
		group.TurnoverClass = e.classifyTurnover(group.AvgTurnover)
		group.BestPerformer = performance(best)
		group.WorstPerformer = performance(worst)

		products = append(products, *group)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].AvgTurnover > products[j].AvgTurnover
	})

	return domain.TurnoverResult{
		Products: products,
		Summary:  e.summarizeTurnover(products),
	}
}

func performance(v domain.VariantInsight) domain.VariantPerformance {
	return domain.VariantPerformance{
		VariantID:         v.VariantID,
		VariantTitle:      v.VariantTitle,
		SKU:               v.SKU,
		InventoryTurnover: v.InventoryTurnover,
	}
}

// summarizeTurnover expects products ranked by average turnover descending.
func (e *Engine) summarizeTurnover(products []domain.ProductTurnover) domain.TurnoverSummary {
	summary := domain.TurnoverSummary{
		TotalProducts:   len(products),
		TopPerformers:   []domain.ProductTurnover{},
		WorstPerformers: []domain.ProductTurnover{},
	}
	if len(products) == 0 {
		return summary
	}

	var sum float64
	for _, p := range products {
		sum += p.AvgTurnover
		switch e.classifyTurnover(p.AvgTurnover) {
		case domain.TurnoverExcellent:
			summary.Distribution.Excellent++
		case domain.TurnoverGood:
			summary.Distribution.Good++
		case domain.TurnoverAverage:
			summary.Distribution.Average++
		case domain.TurnoverPoor:
			summary.Distribution.Poor++
		case domain.TurnoverVeryPoor:
			summary.Distribution.VeryPoor++
		}
	}
	summary.AvgTurnover = sum / float64(len(products))

	top := performerListSize
	if top > len(products) {
		top = len(products)
	}
	summary.TopPerformers = append(summary.TopPerformers, products[:top]...)

	bottom := products[len(products)-top:]
	for i := len(bottom) - 1; i >= 0; i-- {
		summary.WorstPerformers = append(summary.WorstPerformers, bottom[i])
	}

	return summary
}
