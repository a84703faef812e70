// Package domain defines the core data types shared across the stonks
// system: daily price bars, trading signals, and fetch periods.
package domain

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Periods
// ---------------------------------------------------------------------------

// Period identifies a historical lookback window for price data, using the
// conventional short labels ("1mo", "2y", ...).
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodMax Period = "max"
)

// Valid reports whether p is one of the supported period labels.
func (p Period) Valid() bool {
	switch p {
	case Period1Mo, Period3Mo, Period6Mo, Period1Y, Period2Y, Period5Y, Period10Y, PeriodMax:
		return true
	}
	return false
}

// Start returns the inclusive start date of the period ending at ref.
// PeriodMax maps to a 30-year lookback, which predates any daily data the
// providers can serve.
func (p Period) Start(ref time.Time) time.Time {
	switch p {
	case Period1Mo:
		return ref.AddDate(0, -1, 0)
	case Period3Mo:
		return ref.AddDate(0, -3, 0)
	case Period6Mo:
		return ref.AddDate(0, -6, 0)
	case Period1Y:
		return ref.AddDate(-1, 0, 0)
	case Period2Y:
		return ref.AddDate(-2, 0, 0)
	case Period5Y:
		return ref.AddDate(-5, 0, 0)
	case Period10Y:
		return ref.AddDate(-10, 0, 0)
	default:
		return ref.AddDate(-30, 0, 0)
	}
}

// ---------------------------------------------------------------------------
// Price bars
// ---------------------------------------------------------------------------

// Bar is one daily OHLCV observation for a symbol. Price fields and Volume
// are non-negative; Date carries day granularity.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// ValidateSeries checks the invariants of a price series: at least one bar
// and strictly increasing dates. A series that fails these checks must not
// be handed to the signal generator or the backtest engine.
func ValidateSeries(bars []Bar) error {
	if len(bars) == 0 {
		return &InsufficientDataError{Have: 0, Need: 1}
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return fmt.Errorf("bar dates not strictly increasing at index %d: %s !> %s",
				i, bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Closes extracts the close prices of a bar series in order.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// ---------------------------------------------------------------------------
// Signals
// ---------------------------------------------------------------------------

// Signal is an edge-triggered trading action emitted on the date a rule's
// trigger condition fires.
type Signal int

const (
	SignalSell Signal = -1
	SignalHold Signal = 0
	SignalBuy  Signal = 1
)

// SignalPoint pairs a bar date with the signal fired on that date (if any)
// and the desired holding after applying it. Position is level-triggered: it
// flips to 1 on a buy signal, to 0 on a sell signal, and otherwise persists
// from the previous date. The strategy is long-or-flat only, so Position is
// always 0 or 1.
type SignalPoint struct {
	Date     time.Time
	Signal   Signal
	Position int
}
