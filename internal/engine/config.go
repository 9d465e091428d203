package engine

// Config collects every threshold the analytics formulas depend on. The
// calculation code never embeds a magic number directly; tests probe boundary
// behavior by adjusting this struct.
type Config struct {
	// WindowDays is the trailing sales measurement window.
	WindowDays int

	// Reorder sizing.
	LeadTimeDays     int
	SafetyStockDays  int
	ReviewPeriodDays int

	// MaxDaysSupply is the days-of-supply ceiling before stock counts as excess.
	MaxDaysSupply int

	// DaysRemainingCap is the sentinel used when velocity is zero and runway
	// is effectively infinite.
	DaysRemainingCap int

	// Stock status cutoffs, in days of remaining stock.
	CriticalLowDays float64
	LowStockDays    float64
	NormalDays      float64
	HealthyDays     float64

	// Velocity class cutoffs, in price-adjusted units per day.
	FastVelocity   float64
	MediumVelocity float64

	// Price tiers used to normalize velocity across price points.
	LowPriceCeiling float64
	MidPriceCeiling float64
	LowPriceFactor  float64
	MidPriceFactor  float64
	HighPriceFactor float64

	// Turnover class cutoffs, annualized.
	ExcellentTurnover float64
	GoodTurnover      float64
	AverageTurnover   float64
	PoorTurnover      float64

	// Slow-mover detection.
	SlowMovingVelocity float64
	SlowMovingMinStock int

	// Alert thresholds.
	OverstockExcessRisk   float64
	HighValueStockoutRisk float64
	HighValueStockValue   float64

	// HighPriorityScore marks variants that count toward the summary's
	// high-priority bucket.
	HighPriorityScore float64

	// ForecastHorizonDays is the default projection horizon.
	ForecastHorizonDays int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		WindowDays:       90,
		LeadTimeDays:     14,
		SafetyStockDays:  7,
		ReviewPeriodDays: 30,
		MaxDaysSupply:    90,
		DaysRemainingCap: 999,

		CriticalLowDays: 7,
		LowStockDays:    14,
		NormalDays:      30,
		HealthyDays:     90,

		FastVelocity:   2,
		MediumVelocity: 0.5,

		LowPriceCeiling: 25,
		MidPriceCeiling: 100,
		LowPriceFactor:  2,
		MidPriceFactor:  1,
		HighPriceFactor: 0.5,

		ExcellentTurnover: 12,
		GoodTurnover:      8,
		AverageTurnover:   4,
		PoorTurnover:      2,

		SlowMovingVelocity: 0.1,
		SlowMovingMinStock: 30,

		OverstockExcessRisk:   50,
		HighValueStockoutRisk: 70,
		HighValueStockValue:   1000,

		HighPriorityScore: 70,

		ForecastHorizonDays: 30,
	}
}

// withDefaults backfills zero or nonsensical values so a partially populated
// Config can never divide by zero.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.WindowDays <= 0 {
		c.WindowDays = def.WindowDays
	}
	if c.LeadTimeDays <= 0 {
		c.LeadTimeDays = def.LeadTimeDays
	}
	if c.SafetyStockDays < 0 {
		c.SafetyStockDays = def.SafetyStockDays
	}
	if c.ReviewPeriodDays <= 0 {
		c.ReviewPeriodDays = def.ReviewPeriodDays
	}
	if c.MaxDaysSupply <= 0 {
		c.MaxDaysSupply = def.MaxDaysSupply
	}
	if c.DaysRemainingCap <= 0 {
		c.DaysRemainingCap = def.DaysRemainingCap
	}
	if c.HighPriorityScore <= 0 {
		c.HighPriorityScore = def.HighPriorityScore
	}
	if c.ForecastHorizonDays <= 0 {
		c.ForecastHorizonDays = def.ForecastHorizonDays
	}
	return c
}

// annualization converts window turnover to a yearly rate. The 90-day default
// window yields 365/90; the factor tracks the window everywhere it is used.
func (c Config) annualization() float64 {
	return 365.0 / float64(c.WindowDays)
}
