package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

const reorderSoonDays = 14

// Forecast projects each variant's stock forward day by day under a linear
// depletion model: no seasonality, no restock events mid-horizon. A zero
// horizon uses the configured default; a negative horizon is the caller's
// mistake and fails fast.
func (e *Engine) Forecast(insights []domain.VariantInsight, horizonDays int, now time.Time) (domain.ForecastResult, error) {
	if horizonDays < 0 {
		return domain.ForecastResult{}, fmt.Errorf("%w: negative forecast horizon %d", ErrInvalidInput, horizonDays)
	}
	if horizonDays == 0 {
		horizonDays = e.cfg.ForecastHorizonDays
	}

	forecasts := make([]domain.VariantForecast, 0, len(insights))
	for _, ins := range insights {
		forecasts = append(forecasts, e.forecastVariant(ins, horizonDays, now))
	}

	return domain.ForecastResult{
		Forecasts:   forecasts,
		Summary:     summarizeForecasts(forecasts),
		HorizonDays: horizonDays,
	}, nil
}

// forecastVariant is a pure fold over [1..horizon] with a single running
// stock accumulator.
func (e *Engine) forecastVariant(ins domain.VariantInsight, horizonDays int, now time.Time) domain.VariantForecast {
	forecast := domain.VariantForecast{
		VariantID:     ins.VariantID,
		Title:         ins.Title,
		VariantTitle:  ins.VariantTitle,
		CurrentStock:  ins.InventoryQty,
		SalesVelocity: ins.SalesVelocity,
		ReorderPoint:  ins.ReorderPoint,
		Days:          make([]domain.ForecastPoint, 0, horizonDays),
	}

	stock := float64(ins.InventoryQty)
	for day := 1; day <= horizonDays; day++ {
		stock = math.Max(0, stock-ins.SalesVelocity)

		point := domain.ForecastPoint{
			Day:            day,
			Date:           now.AddDate(0, 0, day).Format("2006-01-02"),
			PredictedStock: math.Round(stock*100) / 100,
			WillStockout:   stock <= 0,
			NeedsReorder:   stock <= float64(ins.ReorderPoint),
		}
		forecast.Days = append(forecast.Days, point)

		if point.WillStockout && forecast.Predictions.StockoutInDays == nil {
			forecast.Predictions.StockoutInDays = intPtr(day)
		}
		if point.NeedsReorder && forecast.Predictions.ReorderNeededInDays == nil {
			forecast.Predictions.ReorderNeededInDays = intPtr(day)
		}
	}

	if n := len(forecast.Days); n > 0 {
		forecast.Predictions.StockAtEndOfPeriod = forecast.Days[n-1].PredictedStock
	} else {
		forecast.Predictions.StockAtEndOfPeriod = float64(ins.InventoryQty)
	}

	return forecast
}

func summarizeForecasts(forecasts []domain.VariantForecast) domain.ForecastSummary {
	summary := domain.ForecastSummary{TotalForecasted: len(forecasts)}

	var stockoutDaysSum float64
	for _, f := range forecasts {
		if f.Predictions.StockoutInDays != nil {
			summary.WillStockout++
			stockoutDaysSum += float64(*f.Predictions.StockoutInDays)
		}
		if d := f.Predictions.ReorderNeededInDays; d != nil && *d <= reorderSoonDays {
			summary.NeedReorderSoon++
		}
	}

	if summary.WillStockout > 0 {
		avg := stockoutDaysSum / float64(summary.WillStockout)
		summary.AvgDaysUntilStockout = &avg
	}

	return summary
}
