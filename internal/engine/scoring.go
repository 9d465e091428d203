package engine

import (
	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// ScoringPolicy turns a variant's status and risk signals into a 0-100
// priority. Implementations must clamp their result to [0, 100].
type ScoringPolicy interface {
	Score(status domain.StockStatus, stockoutRisk, excessRisk, profitMargin float64) float64
}

// WeightedScoring is the default policy: a base score per stock status plus
// weighted risk and margin contributions.
type WeightedScoring struct {
	StatusPoints   map[domain.StockStatus]float64
	StockoutWeight float64
	ExcessWeight   float64
	MarginWeight   float64
}

// DefaultScoring returns the production weights.
func DefaultScoring() *WeightedScoring {
	return &WeightedScoring{
		StatusPoints: map[domain.StockStatus]float64{
			domain.StockStatusOutOfStock:  100,
			domain.StockStatusCriticalLow: 90,
			domain.StockStatusLowStock:    70,
			domain.StockStatusOverstocked: 60,
			domain.StockStatusNormal:      30,
			domain.StockStatusHealthy:     20,
		},
		StockoutWeight: 0.5,
		ExcessWeight:   0.3,
		MarginWeight:   0.2,
	}
}

func (w *WeightedScoring) Score(status domain.StockStatus, stockoutRisk, excessRisk, profitMargin float64) float64 {
	score := w.StatusPoints[status]
	score += stockoutRisk * w.StockoutWeight
	score += excessRisk * w.ExcessWeight
	if profitMargin > 0 {
		score += profitMargin * w.MarginWeight
	}
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
