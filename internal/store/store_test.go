package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gw12s/Stonks/internal/backtest"
	"github.com/gw12s/Stonks/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParquetStorePath(t *testing.T) {
	ps := NewParquetStore("/data")

	got := ps.barPath("aapl", 2024)
	want := filepath.Join("/data", "daily", "AAPL", "2024.parquet")
	if got != want {
		t.Errorf("barPath mismatch:\n  got  %s\n  want %s", got, want)
	}
}

func TestParquetStoreWriteReadBars(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	bars := []domain.Bar{
		{Date: day("2024-01-02"), Open: 100, High: 102, Low: 99, Close: 101, Volume: 5000},
		{Date: day("2024-01-03"), Open: 101, High: 104, Low: 100, Close: 103, Volume: 6200},
		{Date: day("2025-01-02"), Open: 110, High: 111, Low: 108, Close: 110, Volume: 4100},
	}
	if err := ps.WriteBars(ctx, "AAPL", bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	// Read across the year boundary.
	got, err := ps.ReadBars(ctx, "AAPL", day("2024-01-01"), day("2025-12-31"))
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ReadBars returned %d bars, want 3", len(got))
	}
	if !got[0].Date.Equal(bars[0].Date) || got[0].Close != 101 {
		t.Errorf("first bar = %+v, want %+v", got[0], bars[0])
	}

	// Range filter excludes the 2025 bar.
	got, err = ps.ReadBars(ctx, "AAPL", day("2024-01-01"), day("2024-12-31"))
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ReadBars with 2024 range returned %d bars, want 2", len(got))
	}

	// Unknown symbol yields no bars and no error.
	got, err = ps.ReadBars(ctx, "ZZZZ", day("2024-01-01"), day("2024-12-31"))
	if err != nil {
		t.Fatalf("ReadBars(unknown): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadBars(unknown) returned %d bars, want 0", len(got))
	}
}

func TestParquetStoreMergeDedup(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	if err := ps.WriteBars(ctx, "TSLA", []domain.Bar{
		{Date: day("2024-06-03"), Close: 100, Volume: 10},
	}); err != nil {
		t.Fatal(err)
	}
	// Rewrite the same date with a corrected close plus a new date.
	if err := ps.WriteBars(ctx, "TSLA", []domain.Bar{
		{Date: day("2024-06-03"), Close: 105, Volume: 10},
		{Date: day("2024-06-04"), Close: 106, Volume: 12},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := ps.ReadBars(ctx, "TSLA", day("2024-01-01"), day("2024-12-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars after merge, want 2", len(got))
	}
	if got[0].Close != 105 {
		t.Errorf("merged bar close = %v, want incoming value 105", got[0].Close)
	}
	if !got[0].Date.Before(got[1].Date) {
		t.Error("merged bars not sorted by date")
	}
}

func TestParquetStoreListSymbols(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	if syms, err := ps.ListSymbols(ctx); err != nil || len(syms) != 0 {
		t.Fatalf("ListSymbols on empty store = %v, %v; want none", syms, err)
	}

	for _, sym := range []string{"MSFT", "AAPL"} {
		if err := ps.WriteBars(ctx, sym, []domain.Bar{{Date: day("2024-01-02"), Close: 1, Volume: 1}}); err != nil {
			t.Fatal(err)
		}
	}

	syms, err := ps.ListSymbols(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(syms) != 2 || syms[0] != "AAPL" || syms[1] != "MSFT" {
		t.Errorf("ListSymbols = %v, want [AAPL MSFT]", syms)
	}
}

func TestSQLiteStoreSaveAndListRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stonks.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	rec := &RunRecord{
		Symbol:         "AAPL",
		Strategy:       "ma-cross-50-200",
		Period:         domain.Period2Y,
		InitialCapital: 10000,
		Commission:     0.001,
		Metrics: backtest.Metrics{
			TotalReturn:          0.15,
			BuyHoldReturn:        0.22,
			ExcessReturn:         -0.07,
			AnnualizedVolatility: 0.18,
			SharpeRatio:          0.6,
			MaxDrawdown:          -0.12,
			WinRate:              0.55,
			TotalTrades:          120,
		},
	}
	if err := s.SaveRun(ctx, rec); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if rec.ID == 0 {
		t.Error("SaveRun did not assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("SaveRun did not stamp CreatedAt")
	}

	other := &RunRecord{
		Symbol:   "MSFT",
		Strategy: "momentum-20",
		Period:   domain.Period1Y,
	}
	if err := s.SaveRun(ctx, other); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	// Filtered by symbol.
	runs, err := s.ListRuns(ctx, "AAPL", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns(AAPL) returned %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.Strategy != "ma-cross-50-200" || got.Period != domain.Period2Y {
		t.Errorf("run = %+v, want saved AAPL run", got)
	}
	if got.Metrics.SharpeRatio != 0.6 || got.Metrics.TotalTrades != 120 {
		t.Errorf("metrics roundtrip mismatch: %+v", got.Metrics)
	}
	if got.Metrics.MaxDrawdown != -0.12 {
		t.Errorf("MaxDrawdown = %v, want -0.12", got.Metrics.MaxDrawdown)
	}

	// Unfiltered returns both.
	runs, err = s.ListRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRuns(all) returned %d runs, want 2", len(runs))
	}
}
