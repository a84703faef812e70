// Package backtest evaluates a signal-annotated price series against a
// buy-and-hold baseline and derives risk/return statistics from the
// resulting equity curve. Each run is a pure transform: it allocates fresh
// output structures, touches no shared state, and is safe to invoke from
// concurrent goroutines.
package backtest

import "time"

// Trading-day annualisation convention.
const TradingDaysPerYear = 252

// Defaults mirror the standard dashboard configuration.
const (
	DefaultInitialCapital = 10000.0
	DefaultCommission     = 0.001 // 0.1% per position change
	DefaultRiskFreeRate   = 0.02  // 2%/yr
)

// Config holds the engine parameters for one backtest run.
type Config struct {
	// InitialCapital is the starting portfolio value. Must be positive.
	InitialCapital float64

	// Commission is the cost charged on each position change, as a fraction
	// of portfolio value. Must be within [0, 1].
	Commission float64

	// RiskFreeRate is the annual risk-free rate used by the Sharpe ratio.
	RiskFreeRate float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		InitialCapital: DefaultInitialCapital,
		Commission:     DefaultCommission,
		RiskFreeRate:   DefaultRiskFreeRate,
	}
}

// EquityPoint is one day of the strategy equity curve. The curve starts at
// the second bar: the first bar has no prior close, so its return is
// undefined and it is excluded rather than zeroed.
type EquityPoint struct {
	Date time.Time

	// MarketReturn is the simple daily return of the close.
	MarketReturn float64

	// PositionLagged is the position carried into this day (yesterday's
	// desired holding). Lagging by one day is what prevents look-ahead:
	// today's return is earned only if the position was already held
	// entering today.
	PositionLagged int

	// StrategyReturn is PositionLagged * MarketReturn, before costs.
	StrategyReturn float64

	// CommissionCost is nonzero only on days the lagged position changed.
	CommissionCost float64

	// StrategyReturnNet is StrategyReturn minus CommissionCost.
	StrategyReturnNet float64

	// CumulativeReturn is the running product of (1 + net return), seeded
	// at 1 for the first defined index.
	CumulativeReturn float64

	// PortfolioValue is InitialCapital * CumulativeReturn.
	PortfolioValue float64

	// BuyHoldCumulative and BuyHoldValue track a passive position held for
	// the whole series. The baseline pays no commission: the single
	// implicit entry cost is deliberately not modelled, isolating the
	// signal strategy's commission drag.
	BuyHoldCumulative float64
	BuyHoldValue      float64
}

// Metrics is the scalar summary of one backtest run. It is a pure function
// of the equity curve and the risk-free rate, recomputed on every run and
// never mutated afterwards.
type Metrics struct {
	TotalReturn   float64
	BuyHoldReturn float64
	ExcessReturn  float64

	// AnnualizedVolatility is the sample standard deviation (n-1 divisor)
	// of daily net returns, scaled by sqrt(252).
	AnnualizedVolatility float64

	// SharpeRatio is exactly 0 when the net-return series has zero
	// standard deviation. That is a deliberate degenerate-case policy, not
	// an error.
	SharpeRatio float64

	// MaxDrawdown is the deepest decline from a running portfolio peak,
	// as a non-positive fraction. 0 means no drawdown ever occurred.
	MaxDrawdown float64

	// WinRate is winning days over active days; 0 when no day had a
	// nonzero net return.
	WinRate float64

	// TotalTrades counts days with a nonzero net return, not discrete
	// buy/sell transaction pairs. Kept for continuity with the dashboard's
	// historical reports.
	TotalTrades int
}

// Result bundles the equity curve and its metrics summary.
type Result struct {
	Equity  []EquityPoint
	Metrics Metrics
}
