package strategy

import (
	"fmt"
	"log/slog"

	"github.com/gw12s/Stonks/internal/domain"
	"github.com/gw12s/Stonks/internal/indicators"
)

// Compile-time interface check.
var _ SignalGenerator = (*Momentum)(nil)

// Momentum implements a rate-of-change threshold rule. It buys when the
// trailing N-day return crosses above +threshold and sells when it crosses
// below -threshold. Like MACross it is edge-triggered and long-or-flat.
type Momentum struct {
	window    int
	threshold float64
	log       *slog.Logger
}

// NewMomentum creates a Momentum rule over a `window`-day return with the
// given entry/exit threshold (a fraction, e.g. 0.05 for 5%).
func NewMomentum(window int, threshold float64, log *slog.Logger) (*Momentum, error) {
	if window < 1 {
		return nil, &domain.ConfigError{Param: "window", Reason: "must be at least 1"}
	}
	if threshold < 0 {
		return nil, &domain.ConfigError{Param: "threshold", Reason: "must be non-negative"}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Momentum{
		window:    window,
		threshold: threshold,
		log:       log.With("rule", "momentum"),
	}, nil
}

// Name returns the parameterised rule identifier, e.g. "momentum-20".
func (s *Momentum) Name() string {
	return fmt.Sprintf("momentum-%d", s.window)
}

// Generate derives momentum signals for the bar series.
func (s *Momentum) Generate(bars []domain.Bar) ([]domain.SignalPoint, error) {
	if s.window < 1 {
		return nil, &domain.ConfigError{Param: "window", Reason: "must be at least 1"}
	}

	signals := make([]domain.SignalPoint, len(bars))
	for i := range bars {
		signals[i].Date = bars[i].Date
	}

	// ROC needs window+1 observations before the first defined value, and a
	// cross needs a defined prior value on top of that.
	if len(bars) < s.window+2 {
		s.log.Warn("not enough bars for momentum window, no signals generated",
			"bars", len(bars), "window", s.window)
		return signals, nil
	}

	roc := indicators.ROC(domain.Closes(bars), s.window)

	position := 0
	for i := range signals {
		if i > 0 && indicators.Defined(roc[i]) && indicators.Defined(roc[i-1]) {
			switch {
			case roc[i] > s.threshold && roc[i-1] <= s.threshold:
				signals[i].Signal = domain.SignalBuy
			case roc[i] < -s.threshold && roc[i-1] >= -s.threshold:
				signals[i].Signal = domain.SignalSell
			}
		}

		switch signals[i].Signal {
		case domain.SignalBuy:
			position = 1
		case domain.SignalSell:
			position = 0
		}
		signals[i].Position = position
	}

	return signals, nil
}
