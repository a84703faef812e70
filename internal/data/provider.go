// Package data fetches historical daily price bars from market-data
// providers and layers caching on top of them.
package data

import (
	"context"

	"github.com/gw12s/Stonks/internal/domain"
)

// Provider fetches historical daily bars for a symbol over a lookback
// period ending at the current time. Implementations must return bars in
// ascending date order with no duplicate dates.
type Provider interface {
	// GetBars returns the daily bars for symbol covering the given period.
	// An empty slice with a nil error means the provider has no data for
	// the symbol.
	GetBars(ctx context.Context, symbol string, period domain.Period) ([]domain.Bar, error)
}
