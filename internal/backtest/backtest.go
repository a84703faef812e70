package backtest

import (
	"fmt"

	"github.com/gw12s/Stonks/internal/domain"
)

// Run executes one backtest over a price series and its aligned signal
// series. It validates the configuration before touching the data, builds
// the daily equity curve for the strategy and the buy-and-hold baseline,
// and derives the metrics summary.
func Run(bars []domain.Bar, signals []domain.SignalPoint, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(bars) != len(signals) {
		return nil, &domain.ConfigError{
			Param:  "signals",
			Reason: fmt.Sprintf("must align 1:1 with bars (%d signals, %d bars)", len(signals), len(bars)),
		}
	}
	if len(bars) < 2 {
		return nil, &domain.InsufficientDataError{Have: len(bars), Need: 2}
	}

	equity := buildEquity(bars, signals, cfg)
	return &Result{
		Equity:  equity,
		Metrics: computeMetrics(equity, cfg.RiskFreeRate),
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.InitialCapital <= 0 {
		return &domain.ConfigError{Param: "initial_capital", Reason: "must be positive"}
	}
	if cfg.Commission < 0 || cfg.Commission > 1 {
		return &domain.ConfigError{Param: "commission", Reason: "must be within [0, 1]"}
	}
	return nil
}

// buildEquity derives the equity curve. The first bar has no prior close,
// so the curve covers bars[1:]. For day i the position applied is the one
// held entering the day, signals[i-1].Position; before any history the lag
// is 0 (cash by default).
func buildEquity(bars []domain.Bar, signals []domain.SignalPoint, cfg Config) []EquityPoint {
	equity := make([]EquityPoint, 0, len(bars)-1)

	cumulative := 1.0
	buyHold := 1.0

	for i := 1; i < len(bars); i++ {
		marketReturn := bars[i].Close/bars[i-1].Close - 1

		lagged := signals[i-1].Position
		prevLagged := 0
		if i > 1 {
			prevLagged = signals[i-2].Position
		}

		gross := float64(lagged) * marketReturn

		// Position is binary, so the change flag is 0 or 1: it marks an
		// entry or exit day, not a share count.
		change := lagged - prevLagged
		if change < 0 {
			change = -change
		}
		commissionCost := float64(change) * cfg.Commission

		net := gross - commissionCost

		cumulative *= 1 + net
		buyHold *= 1 + marketReturn

		equity = append(equity, EquityPoint{
			Date:              bars[i].Date,
			MarketReturn:      marketReturn,
			PositionLagged:    lagged,
			StrategyReturn:    gross,
			CommissionCost:    commissionCost,
			StrategyReturnNet: net,
			CumulativeReturn:  cumulative,
			PortfolioValue:    cfg.InitialCapital * cumulative,
			BuyHoldCumulative: buyHold,
			BuyHoldValue:      cfg.InitialCapital * buyHold,
		})
	}

	return equity
}
