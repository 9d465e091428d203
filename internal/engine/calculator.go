// Package engine implements the inventory analytics computation: per-variant
// metrics, catalog aggregation, turnover ranking, alert generation and the
// day-by-day stock forecast. The engine is pure and stateless; it performs no
// I/O and never mutates its inputs, so identical inputs always produce
// identical output.
package engine

import (
	"errors"
	"math"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

// ErrInvalidInput is returned when the caller supplies an argument the engine
// cannot degrade gracefully on, such as a negative forecast horizon.
var ErrInvalidInput = errors.New("engine: invalid input")

// Engine computes inventory analytics for one shop's catalog.
type Engine struct {
	cfg     Config
	scoring ScoringPolicy
}

// New creates an engine with the default scoring policy.
func New(cfg Config) *Engine {
	return NewWithScoring(cfg, DefaultScoring())
}

// NewWithScoring creates an engine with a custom priority scoring policy.
func NewWithScoring(cfg Config, scoring ScoringPolicy) *Engine {
	if scoring == nil {
		scoring = DefaultScoring()
	}
	return &Engine{cfg: cfg.withDefaults(), scoring: scoring}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// CalculateVariant computes all analytics for a single variant. Missing sales
// default to zero, a zero cost yields zero stock value and margin; there is no
// error path for per-item data.
func (e *Engine) CalculateVariant(rec domain.VariantRecord, sales domain.SalesAggregate, cost float64) domain.VariantAnalytics {
	cfg := e.cfg
	a := domain.VariantAnalytics{}

	stock := rec.InventoryQty
	price := rec.Price
	if cost < 0 {
		cost = 0
	}
	quantity := sales.Quantity
	if quantity < 0 {
		quantity = 0
	}

	// 1. Daily velocity over the trailing window.
	velocity := float64(quantity) / float64(cfg.WindowDays)
	a.SalesVelocity = velocity

	// 2. Stock status and days remaining. The sentinel stands in for an
	// effectively infinite runway when nothing is selling.
	a.StockStatus, a.DaysRemaining = e.stockStatus(stock, velocity)

	// 3. Velocity class, normalized by price tier so cheap high-frequency
	// items and expensive low-frequency items classify comparably.
	a.VelocityClass = e.velocityClass(velocity, price)

	// 4. Reorder point and quantity.
	a.ReorderPoint = int(math.Ceil(velocity * float64(cfg.LeadTimeDays+cfg.SafetyStockDays)))
	targetStock := velocity*float64(cfg.ReviewPeriodDays) + float64(a.ReorderPoint)
	a.ReorderQuantity = int(math.Max(0, math.Ceil(targetStock-float64(stock))))
	a.NeedsReorder = stock <= a.ReorderPoint

	// 5. Annualized turnover.
	if stock > 0 {
		a.InventoryTurnover = float64(quantity) / float64(stock) * cfg.annualization()
	}
	a.TurnoverClass = e.classifyTurnover(a.InventoryTurnover)

	// 6. Dead and slow-mover flags.
	a.IsDeadStock = velocity == 0 && stock > 0
	a.IsSlowMoving = velocity > 0 && velocity < cfg.SlowMovingVelocity && stock > cfg.SlowMovingMinStock

	// 7. Monetary fields.
	a.StockValue = float64(stock) * cost
	a.PotentialRevenue = float64(stock) * price
	if cost > 0 && price > 0 {
		a.ProfitMargin = (price - cost) / price * 100
	}

	// 8-9. Risk scores, both clamped to [0, 100].
	a.StockoutRisk = e.stockoutRisk(stock, velocity)
	a.ExcessRisk = e.excessRisk(stock, velocity)

	// 10. Recommended action, first match wins.
	a.ActionRequired = e.recommendAction(stock, velocity, a.ReorderPoint, a.IsDeadStock, a.IsSlowMoving)

	// 11. Priority score.
	a.Priority = e.scoring.Score(a.StockStatus, a.StockoutRisk, a.ExcessRisk, a.ProfitMargin)

	return a
}

func (e *Engine) stockStatus(stock int, velocity float64) (domain.StockStatus, int) {
	cfg := e.cfg

	if stock <= 0 {
		return domain.StockStatusOutOfStock, 0
	}
	if velocity == 0 {
		return domain.StockStatusOverstocked, cfg.DaysRemainingCap
	}

	days := float64(stock) / velocity
	remaining := int(math.Floor(days))
	if remaining > cfg.DaysRemainingCap {
		remaining = cfg.DaysRemainingCap
	}

	switch {
	case days <= cfg.CriticalLowDays:
		return domain.StockStatusCriticalLow, remaining
	case days <= cfg.LowStockDays:
		return domain.StockStatusLowStock, remaining
	case days <= cfg.NormalDays:
		return domain.StockStatusNormal, remaining
	case days <= cfg.HealthyDays:
		return domain.StockStatusHealthy, remaining
	default:
		return domain.StockStatusOverstocked, remaining
	}
}

func (e *Engine) velocityClass(velocity, price float64) domain.VelocityClass {
	cfg := e.cfg

	factor := cfg.HighPriceFactor
	switch {
	case price < cfg.LowPriceCeiling:
		factor = cfg.LowPriceFactor
	case price < cfg.MidPriceCeiling:
		factor = cfg.MidPriceFactor
	}

	adjusted := velocity * factor
	switch {
	case adjusted >= cfg.FastVelocity:
		return domain.VelocityFastMoving
	case adjusted >= cfg.MediumVelocity:
		return domain.VelocityMediumMoving
	case adjusted > 0:
		return domain.VelocitySlowMoving
	default:
		return domain.VelocityDeadStock
	}
}

func (e *Engine) classifyTurnover(turnover float64) domain.TurnoverClass {
	cfg := e.cfg
	switch {
	case turnover >= cfg.ExcellentTurnover:
		return domain.TurnoverExcellent
	case turnover >= cfg.GoodTurnover:
		return domain.TurnoverGood
	case turnover >= cfg.AverageTurnover:
		return domain.TurnoverAverage
	case turnover >= cfg.PoorTurnover:
		return domain.TurnoverPoor
	default:
		return domain.TurnoverVeryPoor
	}
}

// stockoutRisk estimates the 0-100 likelihood of running out before a
// replenishment could arrive. Inside the lead time the risk scales up to 100;
// beyond it the risk decays from 20 toward zero.
func (e *Engine) stockoutRisk(stock int, velocity float64) float64 {
	if velocity == 0 {
		return 0
	}
	lead := float64(e.cfg.LeadTimeDays)
	days := float64(stock) / velocity
	if days <= lead {
		return clamp(100-days/lead*100, 0, 100)
	}
	return clamp(20-days/lead*20, 0, 100)
}

// excessRisk estimates the 0-100 likelihood of holding too much. Stock with
// zero velocity is pure excess; otherwise risk grows once days of supply
// exceed the configured ceiling.
func (e *Engine) excessRisk(stock int, velocity float64) float64 {
	if velocity == 0 {
		if stock > 0 {
			return 100
		}
		return 0
	}
	maxSupply := float64(e.cfg.MaxDaysSupply)
	supply := float64(stock) / velocity
	if supply <= maxSupply {
		return 0
	}
	return clamp((supply/maxSupply-1)*50, 0, 100)
}

func (e *Engine) recommendAction(stock int, velocity float64, reorderPoint int, isDead, isSlow bool) domain.Action {
	switch {
	case stock <= 0:
		return domain.ActionUrgentReorder
	case stock <= reorderPoint && velocity > 0:
		return domain.ActionReorderNow
	case isDead:
		return domain.ActionLiquidate
	case isSlow:
		return domain.ActionDiscountOrBundle
	case stock > reorderPoint*3 && velocity > 0:
		return domain.ActionReduceOrders
	default:
		return domain.ActionMonitor
	}
}
