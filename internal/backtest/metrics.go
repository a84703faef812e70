package backtest

import "math"

// computeMetrics derives the scalar summary from an equity curve. The curve
// already excludes the warm-up index, so every point carries a defined net
// return.
func computeMetrics(equity []EquityPoint, riskFreeRate float64) Metrics {
	if len(equity) == 0 {
		return Metrics{}
	}

	last := equity[len(equity)-1]
	m := Metrics{
		TotalReturn:   last.CumulativeReturn - 1,
		BuyHoldReturn: last.BuyHoldCumulative - 1,
	}
	m.ExcessReturn = m.TotalReturn - m.BuyHoldReturn

	nets := make([]float64, len(equity))
	for i, p := range equity {
		nets[i] = p.StrategyReturnNet
	}

	sd := sampleStdev(nets)
	m.AnnualizedVolatility = sd * math.Sqrt(TradingDaysPerYear)

	// Zero volatility yields Sharpe = 0 exactly, never a division by zero.
	if sd > 0 {
		annualized := mean(nets)*TradingDaysPerYear - riskFreeRate
		m.SharpeRatio = annualized / m.AnnualizedVolatility
	}

	m.MaxDrawdown = maxDrawdown(equity)

	var wins, active int
	for _, r := range nets {
		if r != 0 {
			active++
			if r > 0 {
				wins++
			}
		}
	}
	m.TotalTrades = active
	if active > 0 {
		m.WinRate = float64(wins) / float64(active)
	}

	return m
}

// maxDrawdown returns the deepest decline from the running portfolio peak
// as a non-positive fraction.
func maxDrawdown(equity []EquityPoint) float64 {
	var dd float64
	peak := math.Inf(-1)
	for _, p := range equity {
		if p.PortfolioValue > peak {
			peak = p.PortfolioValue
		}
		if d := (p.PortfolioValue - peak) / peak; d < dd {
			dd = d
		}
	}
	return dd
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdev is the n-1 divisor standard deviation. Fewer than two
// observations have no dispersion to measure and yield 0.
func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mu := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
