package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/gw12s/Stonks/internal/domain"
)

// Compile-time interface check.
var _ ResultStore = (*SQLiteStore)(nil)

// SQLiteStore implements ResultStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const runsSchema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol                TEXT    NOT NULL,
	strategy              TEXT    NOT NULL,
	period                TEXT    NOT NULL,
	initial_capital       REAL    NOT NULL,
	commission            REAL    NOT NULL,
	total_return          REAL    NOT NULL,
	buyhold_return        REAL    NOT NULL,
	excess_return         REAL    NOT NULL,
	annualized_volatility REAL    NOT NULL,
	sharpe_ratio          REAL    NOT NULL,
	max_drawdown          REAL    NOT NULL,
	win_rate              REAL    NOT NULL,
	total_trades          INTEGER NOT NULL,
	created_at            TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_backtest_runs_symbol ON backtest_runs(symbol);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if _, err := db.Exec(runsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a new run record and fills in its ID. A zero CreatedAt is
// stamped with the current time.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec *RunRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO backtest_runs (
			symbol, strategy, period, initial_capital, commission,
			total_return, buyhold_return, excess_return,
			annualized_volatility, sharpe_ratio, max_drawdown,
			win_rate, total_trades, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Symbol, rec.Strategy, string(rec.Period),
		rec.InitialCapital, rec.Commission,
		rec.Metrics.TotalReturn, rec.Metrics.BuyHoldReturn, rec.Metrics.ExcessReturn,
		rec.Metrics.AnnualizedVolatility, rec.Metrics.SharpeRatio, rec.Metrics.MaxDrawdown,
		rec.Metrics.WinRate, rec.Metrics.TotalTrades,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("resolving run id: %w", err)
	}
	rec.ID = id
	return nil
}

// ListRuns returns the most recent runs, newest first, up to limit. An
// empty symbol matches all symbols.
func (s *SQLiteStore) ListRuns(ctx context.Context, symbol string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, symbol, strategy, period, initial_capital, commission,
		       total_return, buyhold_return, excess_return,
		       annualized_volatility, sharpe_ratio, max_drawdown,
		       win_rate, total_trades, created_at
		FROM backtest_runs`
	args := []any{}
	if symbol != "" {
		query += " WHERE symbol = ?"
		args = append(args, symbol)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var period, createdAt string
		if err := rows.Scan(
			&rec.ID, &rec.Symbol, &rec.Strategy, &period,
			&rec.InitialCapital, &rec.Commission,
			&rec.Metrics.TotalReturn, &rec.Metrics.BuyHoldReturn, &rec.Metrics.ExcessReturn,
			&rec.Metrics.AnnualizedVolatility, &rec.Metrics.SharpeRatio, &rec.Metrics.MaxDrawdown,
			&rec.Metrics.WinRate, &rec.Metrics.TotalTrades, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Period = domain.Period(period)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
