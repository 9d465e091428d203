//go:build property
// +build property

package engine

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// Property: every derived metric stays finite and every 0-100 scale stays
// clamped, no matter how degenerate the inputs get.
func TestCalculateVariantMetricBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	e := New(DefaultConfig())

	properties.Property("risk and priority scores are clamped to [0,100]", prop.ForAll(
		func(stock, qty int, price, cost float64) bool {
			a := e.CalculateVariant(
				domain.VariantRecord{VariantID: 1, ProductID: 1, InventoryQty: stock, Price: price},
				domain.SalesAggregate{Quantity: qty},
				cost,
			)

			for _, v := range []float64{a.StockoutRisk, a.ExcessRisk, a.Priority} {
				if math.IsNaN(v) || v < 0 || v > 100 {
					return false
				}
			}
			return !math.IsNaN(a.SalesVelocity) && !math.IsInf(a.SalesVelocity, 0) &&
				!math.IsNaN(a.InventoryTurnover) && !math.IsInf(a.InventoryTurnover, 0) &&
				a.DaysRemaining >= 0 && a.DaysRemaining <= 999
		},
		gen.IntRange(-100, 1_000_000),
		gen.IntRange(-100, 1_000_000),
		gen.Float64Range(0, 1e9),
		gen.Float64Range(0, 1e9),
	))

	properties.TestingRun(t)
}

// Property: selling faster can only shorten the runway and raise the
// stockout risk, never the opposite.
func TestVelocityMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	e := New(DefaultConfig())

	properties.Property("more velocity never extends runway or lowers stockout risk", prop.ForAll(
		func(stock, qtyA, qtyB int) bool {
			if qtyB < qtyA {
				qtyA, qtyB = qtyB, qtyA
			}

			rec := domain.VariantRecord{VariantID: 1, ProductID: 1, InventoryQty: stock, Price: 30}
			slow := e.CalculateVariant(rec, domain.SalesAggregate{Quantity: qtyA}, 0)
			fast := e.CalculateVariant(rec, domain.SalesAggregate{Quantity: qtyB}, 0)

			return fast.DaysRemaining <= slow.DaysRemaining &&
				fast.StockoutRisk >= slow.StockoutRisk
		},
		gen.IntRange(1, 100_000),
		gen.IntRange(0, 100_000),
		gen.IntRange(0, 100_000),
	))

	properties.TestingRun(t)
}

// Property: the calculator is a pure function of its inputs.
func TestCalculateVariantDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	e := New(DefaultConfig())

	properties.Property("identical inputs produce identical analytics", prop.ForAll(
		func(stock, qty int, price, cost float64) bool {
			rec := domain.VariantRecord{VariantID: 7, ProductID: 7, InventoryQty: stock, Price: price}
			agg := domain.SalesAggregate{Quantity: qty}
			return e.CalculateVariant(rec, agg, cost) == e.CalculateVariant(rec, agg, cost)
		},
		gen.IntRange(0, 100_000),
		gen.IntRange(0, 100_000),
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0, 1e6),
	))

	properties.TestingRun(t)
}

// Property: projected stock never goes negative and never increases.
func TestForecastMonotoneDepletion(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	e := New(DefaultConfig())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("forecast stock is non-negative and non-increasing", prop.ForAll(
		func(stock int, velocity float64, horizon int) bool {
			ins := domain.VariantInsight{
				VariantRecord:    domain.VariantRecord{VariantID: 1, InventoryQty: stock},
				VariantAnalytics: domain.VariantAnalytics{SalesVelocity: velocity},
			}

			result, err := e.Forecast([]domain.VariantInsight{ins}, horizon, now)
			if err != nil {
				return false
			}

			prev := math.Inf(1)
			for _, day := range result.Forecasts[0].Days {
				if day.PredictedStock < 0 || day.PredictedStock > prev+1e-9 {
					return false
				}
				prev = day.PredictedStock
			}
			return true
		},
		gen.IntRange(0, 10_000),
		gen.Float64Range(0, 500),
		gen.IntRange(1, 90),
	))

	properties.Property("stockout day is set exactly when stock reaches zero", prop.ForAll(
		func(stock int, velocity float64) bool {
			ins := domain.VariantInsight{
				VariantRecord:    domain.VariantRecord{VariantID: 1, InventoryQty: stock},
				VariantAnalytics: domain.VariantAnalytics{SalesVelocity: velocity},
			}

			result, err := e.Forecast([]domain.VariantInsight{ins}, 60, now)
			if err != nil {
				return false
			}

			f := result.Forecasts[0]
			sawZero := false
			for _, day := range f.Days {
				if day.WillStockout {
					sawZero = true
				}
			}
			return sawZero == (f.Predictions.StockoutInDays != nil)
		},
		gen.IntRange(0, 1_000),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}

// Property: alert generation reports every stocked-out variant and the
// summary count matches the alert list.
func TestGenerateAlertsConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	e := New(DefaultConfig())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("every stockout is alerted and totals agree", prop.ForAll(
		func(stocks []int, qtys []int) bool {
			n := len(stocks)
			if len(qtys) < n {
				n = len(qtys)
			}

			catalog := make([]domain.VariantRecord, 0, n)
			sales := map[int64]domain.SalesAggregate{}
			for i := 0; i < n; i++ {
				id := int64(i + 1)
				catalog = append(catalog, domain.VariantRecord{
					VariantID: id, ProductID: id, Title: "Item", InventoryQty: stocks[i], Price: 25,
				})
				sales[id] = domain.SalesAggregate{VariantID: id, Quantity: qtys[i]}
			}

			insights := e.ComputeLevels(catalog, sales, nil, domain.LevelsFilter{}).Variants
			result := e.GenerateAlerts(insights, nil, now)

			if result.Summary.TotalAlerts != len(result.Alerts) {
				return false
			}

			alerted := map[int64]bool{}
			for _, a := range result.Alerts {
				if a.Type == domain.AlertOutOfStock {
					alerted[a.VariantID] = true
				}
			}
			for _, ins := range insights {
				if ins.StockStatus == domain.StockStatusOutOfStock && !alerted[ins.VariantID] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 500)),
		gen.SliceOf(gen.IntRange(0, 500)),
	))

	properties.TestingRun(t)
}
