package strategy

import (
	"fmt"
	"log/slog"

	"github.com/gw12s/Stonks/internal/domain"
	"github.com/gw12s/Stonks/internal/indicators"
)

// Compile-time interface check.
var _ SignalGenerator = (*MACross)(nil)

// MACross implements the moving-average crossover rule. It emits a buy
// signal when the short-window SMA crosses above the long-window SMA (golden
// cross) and a sell signal when it crosses below (death cross). Crossing
// requires strict inequality on the post side: ties never fire.
type MACross struct {
	shortWindow int
	longWindow  int
	log         *slog.Logger
}

// NewMACross creates an MACross rule with the given windows. The windows
// must satisfy 2 <= short < long. The logger receives warning diagnostics
// for series too short to evaluate; nil falls back to slog.Default().
func NewMACross(short, long int, log *slog.Logger) (*MACross, error) {
	if err := validateWindows(short, long); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &MACross{
		shortWindow: short,
		longWindow:  long,
		log:         log.With("rule", "ma-cross"),
	}, nil
}

func validateWindows(short, long int) error {
	if short < 2 {
		return &domain.ConfigError{Param: "short_window", Reason: "must be at least 2"}
	}
	if short >= long {
		return &domain.ConfigError{
			Param:  "short_window",
			Reason: fmt.Sprintf("must be less than long_window (%d >= %d)", short, long),
		}
	}
	return nil
}

// Name returns the parameterised rule identifier, e.g. "ma-cross-50-200".
func (s *MACross) Name() string {
	return fmt.Sprintf("ma-cross-%d-%d", s.shortWindow, s.longWindow)
}

// Generate derives crossover signals for the bar series. When the series is
// shorter than the long window the rule cannot evaluate and the result is
// all-flat with a warning diagnostic, not an error.
func (s *MACross) Generate(bars []domain.Bar) ([]domain.SignalPoint, error) {
	if err := validateWindows(s.shortWindow, s.longWindow); err != nil {
		return nil, err
	}

	signals := make([]domain.SignalPoint, len(bars))
	for i := range bars {
		signals[i].Date = bars[i].Date
	}

	if len(bars) < s.longWindow {
		s.log.Warn("not enough bars for long moving average, no signals generated",
			"bars", len(bars), "long_window", s.longWindow)
		return signals, nil
	}

	closes := domain.Closes(bars)
	maShort := indicators.SMA(closes, s.shortWindow)
	maLong := indicators.SMA(closes, s.longWindow)

	var buys, sells int
	position := 0
	for i := range signals {
		// Both MA pairs must be defined at i-1 and i, so the first defined
		// pair can never itself be a crossing point.
		if i > 0 &&
			indicators.Defined(maShort[i]) && indicators.Defined(maLong[i]) &&
			indicators.Defined(maShort[i-1]) && indicators.Defined(maLong[i-1]) {
			switch {
			case maShort[i] > maLong[i] && maShort[i-1] <= maLong[i-1]:
				signals[i].Signal = domain.SignalBuy
				buys++
			case maShort[i] < maLong[i] && maShort[i-1] >= maLong[i-1]:
				signals[i].Signal = domain.SignalSell
				sells++
			}
		}

		// Position flips to 1 on a buy, to 0 exactly on the sell date, and
		// otherwise carries forward. Long-or-flat only.
		switch signals[i].Signal {
		case domain.SignalBuy:
			position = 1
		case domain.SignalSell:
			position = 0
		}
		signals[i].Position = position
	}

	s.log.Debug("generated signals",
		"bars", len(bars), "buys", buys, "sells", sells)
	return signals, nil
}
