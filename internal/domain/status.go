package domain

// StockStatus classifies how much runway a variant's on-hand stock has at
// its current sales velocity.
type StockStatus string

const (
	StockStatusOutOfStock  StockStatus = "out_of_stock"
	StockStatusCriticalLow StockStatus = "critical_low"
	StockStatusLowStock    StockStatus = "low_stock"
	StockStatusNormal      StockStatus = "normal"
	StockStatusHealthy     StockStatus = "healthy"
	StockStatusOverstocked StockStatus = "overstocked"
)

// StockStatuses lists every status in display order.
var StockStatuses = []StockStatus{
	StockStatusOutOfStock,
	StockStatusCriticalLow,
	StockStatusLowStock,
	StockStatusNormal,
	StockStatusHealthy,
	StockStatusOverstocked,
}

// VelocityClass buckets variants by price-adjusted sales rate.
type VelocityClass string

const (
	VelocityFastMoving   VelocityClass = "fast_moving"
	VelocityMediumMoving VelocityClass = "medium_moving"
	VelocitySlowMoving   VelocityClass = "slow_moving"
	VelocityDeadStock    VelocityClass = "dead_stock"
)

// TurnoverClass buckets annualized inventory turnover.
type TurnoverClass string

const (
	TurnoverExcellent TurnoverClass = "excellent"
	TurnoverGood      TurnoverClass = "good"
	TurnoverAverage   TurnoverClass = "average"
	TurnoverPoor      TurnoverClass = "poor"
	TurnoverVeryPoor  TurnoverClass = "very_poor"
)

// Action is the recommended next step for a variant.
type Action string

const (
	ActionUrgentReorder    Action = "urgent_reorder"
	ActionReorderNow       Action = "reorder_now"
	ActionLiquidate        Action = "liquidate"
	ActionDiscountOrBundle Action = "discount_or_bundle"
	ActionReduceOrders     Action = "reduce_orders"
	ActionMonitor          Action = "monitor"
)

// AlertType identifies the condition that triggered an alert.
type AlertType string

const (
	AlertOutOfStock    AlertType = "out_of_stock"
	AlertCriticalLow   AlertType = "critical_low"
	AlertReorderNeeded AlertType = "reorder_needed"
	AlertDeadStock     AlertType = "dead_stock"
	AlertSlowMoving    AlertType = "slow_moving"
	AlertOverstock     AlertType = "overstock"
	AlertHighValueRisk AlertType = "high_value_risk"
)

// AlertSeverity ranks alerts for triage.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityHigh     AlertSeverity = "high"
	SeverityMedium   AlertSeverity = "medium"
	SeverityLow      AlertSeverity = "low"
)

// Alert type groups accepted by the alerts endpoint. A group selects the
// alert types it covers; "all" selects everything.
const (
	AlertGroupAll       = "all"
	AlertGroupStock     = "stock"
	AlertGroupDeadStock = "dead_stock"
	AlertGroupOverstock = "overstock"
	AlertGroupHighValue = "high_value"
)
