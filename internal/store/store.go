// Package store defines storage interfaces for the price cache and for
// persisted backtest runs, with Parquet and SQLite implementations.
package store

import (
	"context"
	"time"

	"github.com/gw12s/Stonks/internal/backtest"
	"github.com/gw12s/Stonks/internal/domain"
)

// BarStore persists and retrieves daily OHLCV bars for single symbols.
type BarStore interface {
	// WriteBars persists a batch of bars for the given symbol. Writes are
	// merged with existing data and deduplicated by date.
	WriteBars(ctx context.Context, symbol string, bars []domain.Bar) error

	// ReadBars returns the bars for symbol within [start, end], ordered by
	// date. A symbol with no stored data yields an empty slice, not an
	// error.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols with stored bars.
	ListSymbols(ctx context.Context) ([]string, error)
}

// RunRecord is one persisted backtest run: the inputs that produced it and
// the metrics summary it yielded.
type RunRecord struct {
	ID             int64
	Symbol         string
	Strategy       string
	Period         domain.Period
	InitialCapital float64
	Commission     float64
	Metrics        backtest.Metrics
	CreatedAt      time.Time
}

// ResultStore persists and retrieves backtest run records.
type ResultStore interface {
	// SaveRun inserts a new run record and fills in its ID.
	SaveRun(ctx context.Context, rec *RunRecord) error

	// ListRuns returns the most recent runs, newest first, up to limit.
	// An empty symbol matches all symbols.
	ListRuns(ctx context.Context, symbol string, limit int) ([]RunRecord, error)
}
