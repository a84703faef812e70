package data

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/gw12s/Stonks/internal/domain"
	"github.com/gw12s/Stonks/internal/util"
)

// ---------------------------------------------------------------------------
// Compile-time interface checks
// ---------------------------------------------------------------------------

var _ Provider = (*AlpacaProvider)(nil)

// ---------------------------------------------------------------------------
// AlpacaProvider — daily OHLCV bars from the Alpaca market-data API.
// ---------------------------------------------------------------------------

// AlpacaProvider fetches daily bar data via the Alpaca market-data API,
// applying rate limiting and retries with exponential backoff.
type AlpacaProvider struct {
	client     *marketdata.Client
	limiter    *util.RateLimiter
	maxRetries int
	retryDelay time.Duration
	log        *slog.Logger
}

// NewAlpacaProvider creates an AlpacaProvider configured with the given
// Alpaca credentials and request limits. dataURL may be empty to use the
// default API endpoint.
func NewAlpacaProvider(apiKey, apiSecret, dataURL string, rateLimitPerMin, maxRetries int) *AlpacaProvider {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &AlpacaProvider{
		client:     marketdata.NewClient(opts),
		limiter:    util.NewRateLimiter(rateLimitPerMin),
		maxRetries: maxRetries,
		retryDelay: time.Second,
		log:        slog.Default().With("provider", "alpaca"),
	}
}

// GetBars fetches daily bars for symbol covering the given period, ending
// at the current time.
func (p *AlpacaProvider) GetBars(ctx context.Context, symbol string, period domain.Period) ([]domain.Bar, error) {
	if !period.Valid() {
		return nil, &domain.ConfigError{Param: "period", Reason: fmt.Sprintf("unknown period %q", period)}
	}

	symbol = strings.ToUpper(symbol)
	now := time.Now().UTC()
	start := period.Start(now)

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var alpacaBars []marketdata.Bar
	err := util.Retry(ctx, p.maxRetries, p.retryDelay, func() error {
		var ferr error
		alpacaBars, ferr = p.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       now,
			Feed:      "sip",
		})
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}

	bars := make([]domain.Bar, 0, len(alpacaBars))
	for _, ab := range alpacaBars {
		bars = append(bars, domain.Bar{
			Date:   ab.Timestamp.UTC().Truncate(24 * time.Hour),
			Open:   ab.Open,
			High:   ab.High,
			Low:    ab.Low,
			Close:  ab.Close,
			Volume: int64(ab.Volume),
		})
	}

	p.log.Debug("fetched bars", "symbol", symbol, "period", string(period), "count", len(bars))
	return bars, nil
}
