// backend-go/internal/domain/models.go
package domain

import "time"

// VariantRecord is an immutable snapshot of one sellable SKU as supplied by
// the catalog source. The engine never mutates it.
type VariantRecord struct {
	VariantID      int64     `json:"id" db:"variant_id"`
	ProductID      int64     `json:"product_id" db:"product_id"`
	Title          string    `json:"title" db:"title"`
	VariantTitle   string    `json:"variant_title" db:"variant_title"`
	SKU            string    `json:"sku" db:"sku"`
	Barcode        string    `json:"barcode" db:"barcode"`
	Vendor         string    `json:"vendor" db:"vendor"`
	ProductType    string    `json:"product_type" db:"product_type"`
	InventoryQty   int       `json:"inventory_quantity" db:"inventory_quantity"`
	Price          float64   `json:"price" db:"price"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty" db:"compare_at_price"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SalesAggregate accumulates sales for one variant over the trailing
// measurement window. A missing aggregate means zero sales.
type SalesAggregate struct {
	VariantID int64   `json:"variant_id" db:"variant_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Revenue   float64 `json:"revenue" db:"revenue"`
	Orders    int     `json:"orders" db:"orders"`
}

// VariantAnalytics holds every derived metric for a single variant.
type VariantAnalytics struct {
	SalesVelocity float64       `json:"sales_velocity"`
	VelocityClass VelocityClass `json:"velocity_class"`

	StockStatus   StockStatus `json:"stock_status"`
	DaysRemaining int         `json:"days_remaining"`
	IsDeadStock   bool        `json:"is_dead_stock"`
	IsSlowMoving  bool        `json:"is_slow_moving"`

	ReorderPoint    int  `json:"reorder_point"`
	ReorderQuantity int  `json:"reorder_quantity"`
	NeedsReorder    bool `json:"needs_reorder"`

	InventoryTurnover float64       `json:"inventory_turnover"`
	TurnoverClass     TurnoverClass `json:"turnover_classification"`

	StockValue       float64 `json:"stock_value"`
	PotentialRevenue float64 `json:"potential_revenue"`
	ProfitMargin     float64 `json:"profit_margin"`

	StockoutRisk float64 `json:"stockout_risk"`
	ExcessRisk   float64 `json:"excess_risk"`

	ActionRequired Action  `json:"action_required"`
	Priority       float64 `json:"priority"`
}

// VariantInsight is a variant record joined with its window sales totals,
// cost and computed analytics. This is the row shape the dashboard consumes.
type VariantInsight struct {
	VariantRecord

	CostPerItem  *float64 `json:"cost_per_item,omitempty"`
	TotalSales   int      `json:"total_sales_90d"`
	TotalRevenue float64  `json:"total_revenue_90d"`
	TotalOrders  int      `json:"total_orders_90d"`

	VariantAnalytics
}

// StockStatusBreakdown counts variants per stock status.
type StockStatusBreakdown struct {
	OutOfStock  int `json:"out_of_stock"`
	CriticalLow int `json:"critical_low"`
	LowStock    int `json:"low_stock"`
	Normal      int `json:"normal"`
	Healthy     int `json:"healthy"`
	Overstocked int `json:"overstocked"`
}

// VelocityBreakdown counts variants per velocity class.
type VelocityBreakdown struct {
	FastMoving   int `json:"fast_moving"`
	MediumMoving int `json:"medium_moving"`
	SlowMoving   int `json:"slow_moving"`
	DeadStock    int `json:"dead_stock"`
}

// ActionBreakdown counts variants per recommended action.
type ActionBreakdown struct {
	UrgentReorder    int `json:"urgent_reorder"`
	ReorderNow       int `json:"reorder_now"`
	Liquidate        int `json:"liquidate"`
	DiscountOrBundle int `json:"discount_or_bundle"`
	ReduceOrders     int `json:"reduce_orders"`
	Monitor          int `json:"monitor"`
}

// InventorySummary is the store-wide rollup over a (possibly filtered) set of
// variant insights.
type InventorySummary struct {
	TotalVariants         int                  `json:"total_variants"`
	TotalStockValue       float64              `json:"total_stock_value"`
	TotalPotentialRevenue float64              `json:"total_potential_revenue"`
	StockStatus           StockStatusBreakdown `json:"stock_status"`
	Velocity              VelocityBreakdown    `json:"velocity"`
	ActionsNeeded         ActionBreakdown      `json:"actions_needed"`
	AvgTurnover           float64              `json:"avg_turnover"`
	DeadStockValue        float64              `json:"dead_stock_value"`
	ReorderNeededCount    int                  `json:"reorder_needed_count"`
	HighPriorityCount     int                  `json:"high_priority_count"`
}

// LevelsFilter narrows the variant set returned by the levels computation.
// Empty fields are ignored.
type LevelsFilter struct {
	StockStatus   string `json:"stock_status"`
	VelocityClass string `json:"velocity_class"`
	ProductType   string `json:"product_type"`
	Vendor        string `json:"vendor"`
	NeedsAction   bool   `json:"needs_action"`
	Search        string `json:"search"`
	SortBy        string `json:"sort_by"`
}

// LevelsResult is the output of the catalog-wide analytics pass.
type LevelsResult struct {
	Variants []VariantInsight `json:"variants"`
	Summary  InventorySummary `json:"summary"`
}

// VariantPerformance is a slim view of one variant inside a product turnover
// group.
type VariantPerformance struct {
	VariantID         int64   `json:"variant_id"`
	VariantTitle      string  `json:"variant_title"`
	SKU               string  `json:"sku"`
	InventoryTurnover float64 `json:"inventory_turnover"`
}

// ProductTurnover aggregates variant turnover for one parent product.
type ProductTurnover struct {
	ProductID       int64              `json:"product_id"`
	Title           string             `json:"title"`
	ProductType     string             `json:"product_type"`
	Vendor          string             `json:"vendor"`
	VariantsCount   int                `json:"variants_count"`
	TotalStockValue float64            `json:"total_stock_value"`
	TotalRevenue    float64            `json:"total_revenue_90d"`
	AvgTurnover     float64            `json:"avg_turnover"`
	TurnoverClass   TurnoverClass      `json:"turnover_classification"`
	BestPerformer   VariantPerformance `json:"best_performer"`
	WorstPerformer  VariantPerformance `json:"worst_performer"`
}

// TurnoverDistribution counts products per turnover class.
type TurnoverDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
	VeryPoor  int `json:"very_poor"`
}

// TurnoverSummary summarizes the product turnover ranking.
type TurnoverSummary struct {
	TotalProducts   int                  `json:"total_products"`
	AvgTurnover     float64              `json:"avg_turnover"`
	Distribution    TurnoverDistribution `json:"turnover_distribution"`
	TopPerformers   []ProductTurnover    `json:"top_performers"`
	WorstPerformers []ProductTurnover    `json:"worst_performers"`
}

// TurnoverResult is the output of the turnover analysis. PeriodDays is the
// sales window the analysis was computed over.
type TurnoverResult struct {
	Products   []ProductTurnover `json:"turnover_analysis"`
	Summary    TurnoverSummary   `json:"summary"`
	PeriodDays int               `json:"period_days"`
}

// Alert is one actionable finding about a variant. Alerts are recomputed on
// every request and carry no identity across runs.
type Alert struct {
	Type         AlertType     `json:"type"`
	Severity     AlertSeverity `json:"severity"`
	ProductID    int64         `json:"product_id"`
	VariantID    int64         `json:"variant_id"`
	Title        string        `json:"title"`
	VariantTitle string        `json:"variant_title"`
	Message      string        `json:"message"`
	CurrentStock int           `json:"current_stock"`

	DaysRemaining   *int     `json:"days_remaining,omitempty"`
	ReorderPoint    *int     `json:"reorder_point,omitempty"`
	ReorderQuantity *int     `json:"reorder_quantity,omitempty"`
	StockValue      *float64 `json:"stock_value,omitempty"`
	SalesVelocity   *float64 `json:"sales_velocity,omitempty"`
	StockoutRisk    *float64 `json:"stockout_risk,omitempty"`
	ExcessRisk      *float64 `json:"excess_risk,omitempty"`

	RecommendedAction Action    `json:"recommended_action"`
	Priority          float64   `json:"priority"`
	CreatedAt         time.Time `json:"created_at"`
}

// AlertTypeBreakdown counts alerts per type.
type AlertTypeBreakdown struct {
	OutOfStock    int `json:"out_of_stock"`
	CriticalLow   int `json:"critical_low"`
	ReorderNeeded int `json:"reorder_needed"`
	DeadStock     int `json:"dead_stock"`
	SlowMoving    int `json:"slow_moving"`
	Overstock     int `json:"overstock"`
	HighValueRisk int `json:"high_value_risk"`
}

// AlertSummary summarizes an alert scan.
type AlertSummary struct {
	TotalAlerts         int                `json:"total_alerts"`
	CriticalAlerts      int                `json:"critical_alerts"`
	HighPriority        int                `json:"high_priority"`
	MediumPriority      int                `json:"medium_priority"`
	LowPriority         int                `json:"low_priority"`
	ByType              AlertTypeBreakdown `json:"by_type"`
	TotalDeadStockValue float64            `json:"total_dead_stock_value"`
}

// AlertsResult is the output of the alert generator.
type AlertsResult struct {
	Alerts  []Alert      `json:"alerts"`
	Summary AlertSummary `json:"summary"`
}

// ForecastPoint is one projected day in a variant forecast.
type ForecastPoint struct {
	Day            int     `json:"day"`
	Date           string  `json:"date"`
	PredictedStock float64 `json:"predicted_stock"`
	WillStockout   bool    `json:"will_stockout"`
	NeedsReorder   bool    `json:"needs_reorder"`
}

// ForecastPredictions holds the headline numbers of one variant forecast.
// Day fields are nil when the event does not occur within the horizon.
type ForecastPredictions struct {
	StockoutInDays      *int    `json:"stockout_in_days"`
	ReorderNeededInDays *int    `json:"reorder_needed_in_days"`
	StockAtEndOfPeriod  float64 `json:"stock_at_end_of_period"`
}

// VariantForecast is the day-by-day stock projection for one variant.
type VariantForecast struct {
	VariantID     int64               `json:"variant_id"`
	Title         string              `json:"title"`
	VariantTitle  string              `json:"variant_title"`
	CurrentStock  int                 `json:"current_stock"`
	SalesVelocity float64             `json:"sales_velocity"`
	ReorderPoint  int                 `json:"reorder_point"`
	Days          []ForecastPoint     `json:"forecast_days"`
	Predictions   ForecastPredictions `json:"predictions"`
}

// ForecastSummary rolls up a batch of variant forecasts.
type ForecastSummary struct {
	TotalForecasted      int      `json:"total_forecasted"`
	WillStockout         int      `json:"will_stockout"`
	NeedReorderSoon      int      `json:"need_reorder_soon"`
	AvgDaysUntilStockout *float64 `json:"avg_days_until_stockout"`
}

// ForecastResult is the output of the forecaster. HorizonDays is the
// effective projection horizon after defaulting.
type ForecastResult struct {
	Forecasts   []VariantForecast `json:"forecasts"`
	Summary     ForecastSummary   `json:"summary"`
	HorizonDays int               `json:"forecast_period_days"`
}

// Recommendation is a prioritized suggestion derived from summary metrics.
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Priority    string `json:"priority"`
	Impact      string `json:"impact"`
}

// OverviewKPIs are the headline dashboard numbers.
type OverviewKPIs struct {
	TotalVariants           int     `json:"total_variants"`
	TotalStockValue         float64 `json:"total_stock_value"`
	AvgInventoryTurnover    float64 `json:"avg_inventory_turnover"`
	HealthyStockPercentage  float64 `json:"healthy_stock_percentage"`
	StockoutRiskProducts    int     `json:"stockout_risk_products"`
	DeadStockValue          float64 `json:"dead_stock_value"`
	DeadStockPercentage     float64 `json:"dead_stock_percentage"`
	UrgentActionsNeeded     int     `json:"urgent_actions_needed"`
	ReorderNeeded           int     `json:"reorder_needed"`
	FastMovers              int     `json:"fast_movers"`
	SlowMovers              int     `json:"slow_movers"`
	PotentialLostSales      float64 `json:"potential_lost_sales"`
	OptimizationOpportunity float64 `json:"optimization_opportunity"`
}

// OverviewResult is the store-wide decision-support rollup.
type OverviewResult struct {
	KPIs                 OverviewKPIs         `json:"kpis"`
	StockDistribution    StockStatusBreakdown `json:"stock_distribution"`
	VelocityDistribution VelocityBreakdown    `json:"velocity_distribution"`
	AlertSummary         AlertSummary         `json:"alert_summary"`
	TurnoverSummary      TurnoverSummary      `json:"turnover_summary"`
	Recommendations      []Recommendation     `json:"recommendations"`
	HealthScore          int                  `json:"health_score"`
}

// CostEntry is one variant cost supplied by the cost-update collaborator.
type CostEntry struct {
	VariantID   int64   `json:"variant_id"`
	CostPerItem float64 `json:"cost_per_item"`
}
