package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

var forecastNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func forecastInsight(id int64, stock int, velocity float64, reorderPoint int) domain.VariantInsight {
	return domain.VariantInsight{
		VariantRecord: domain.VariantRecord{
			VariantID:    id,
			ProductID:    id * 10,
			Title:        "Canvas Tote",
			InventoryQty: stock,
		},
		VariantAnalytics: domain.VariantAnalytics{
			SalesVelocity: velocity,
			ReorderPoint:  reorderPoint,
		},
	}
}

func TestForecastLinearDepletion(t *testing.T) {
	e := New(DefaultConfig())

	result, err := e.Forecast([]domain.VariantInsight{forecastInsight(1, 10, 3, 5)}, 7, forecastNow)
	require.NoError(t, err)
	require.Len(t, result.Forecasts, 1)

	f := result.Forecasts[0]
	require.Len(t, f.Days, 7)

	assert.InDelta(t, 7.0, f.Days[0].PredictedStock, 1e-9)
	assert.Equal(t, "2025-06-02", f.Days[0].Date)
	assert.False(t, f.Days[0].WillStockout)
	assert.False(t, f.Days[0].NeedsReorder)

	assert.InDelta(t, 4.0, f.Days[1].PredictedStock, 1e-9)
	assert.True(t, f.Days[1].NeedsReorder)

	assert.InDelta(t, 1.0, f.Days[2].PredictedStock, 1e-9)
	assert.Zero(t, f.Days[3].PredictedStock)
	assert.True(t, f.Days[3].WillStockout)

	// Stock stays pinned at zero once depleted.
	assert.Zero(t, f.Days[6].PredictedStock)

	require.NotNil(t, f.Predictions.StockoutInDays)
	assert.Equal(t, 4, *f.Predictions.StockoutInDays)
	require.NotNil(t, f.Predictions.ReorderNeededInDays)
	assert.Equal(t, 2, *f.Predictions.ReorderNeededInDays)
	assert.Zero(t, f.Predictions.StockAtEndOfPeriod)
}

func TestForecastZeroVelocityNeverStocksOut(t *testing.T) {
	e := New(DefaultConfig())

	result, err := e.Forecast([]domain.VariantInsight{forecastInsight(2, 40, 0, 10)}, 30, forecastNow)
	require.NoError(t, err)

	f := result.Forecasts[0]
	assert.Nil(t, f.Predictions.StockoutInDays)
	assert.Nil(t, f.Predictions.ReorderNeededInDays)
	assert.InDelta(t, 40.0, f.Predictions.StockAtEndOfPeriod, 1e-9)
	for _, day := range f.Days {
		assert.False(t, day.WillStockout)
		assert.InDelta(t, 40.0, day.PredictedStock, 1e-9)
	}
}

func TestForecastFractionalVelocityRounding(t *testing.T) {
	e := New(DefaultConfig())

	result, err := e.Forecast([]domain.VariantInsight{forecastInsight(3, 1, 0.4, 0)}, 4, forecastNow)
	require.NoError(t, err)

	f := result.Forecasts[0]
	assert.InDelta(t, 0.6, f.Days[0].PredictedStock, 1e-9)
	assert.InDelta(t, 0.2, f.Days[1].PredictedStock, 1e-9)
	assert.Zero(t, f.Days[2].PredictedStock)
	require.NotNil(t, f.Predictions.StockoutInDays)
	assert.Equal(t, 3, *f.Predictions.StockoutInDays)
}

func TestForecastHorizonDefaultsAndValidation(t *testing.T) {
	e := New(DefaultConfig())

	t.Run("zero horizon uses the configured default", func(t *testing.T) {
		result, err := e.Forecast([]domain.VariantInsight{forecastInsight(4, 100, 1, 5)}, 0, forecastNow)
		require.NoError(t, err)
		assert.Len(t, result.Forecasts[0].Days, DefaultConfig().ForecastHorizonDays)
		assert.Equal(t, DefaultConfig().ForecastHorizonDays, result.HorizonDays)
	})

	t.Run("negative horizon is rejected", func(t *testing.T) {
		_, err := e.Forecast(nil, -1, forecastNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestForecastSummary(t *testing.T) {
	e := New(DefaultConfig())

	insights := []domain.VariantInsight{
		forecastInsight(1, 10, 2, 3),  // stocks out day 5, reorder day 4
		forecastInsight(2, 6, 1, 30),  // stocks out day 6, reorder day 1
		forecastInsight(3, 500, 1, 5), // never stocks out in horizon
		forecastInsight(4, 20, 0, 5),  // no movement at all
	}

	result, err := e.Forecast(insights, 30, forecastNow)
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, 4, s.TotalForecasted)
	assert.Equal(t, 2, s.WillStockout)
	assert.Equal(t, 2, s.NeedReorderSoon)
	require.NotNil(t, s.AvgDaysUntilStockout)
	assert.InDelta(t, 5.5, *s.AvgDaysUntilStockout, 1e-9)
}

func TestForecastSummaryNoStockouts(t *testing.T) {
	e := New(DefaultConfig())

	result, err := e.Forecast([]domain.VariantInsight{forecastInsight(1, 1000, 1, 5)}, 10, forecastNow)
	require.NoError(t, err)

	assert.Zero(t, result.Summary.WillStockout)
	assert.Nil(t, result.Summary.AvgDaysUntilStockout)
}
