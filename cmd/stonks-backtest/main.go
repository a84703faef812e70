// Command stonks-backtest fetches historical bars, runs a trading rule
// over them, and prints the resulting performance metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gw12s/Stonks/internal/backtest"
	"github.com/gw12s/Stonks/internal/config"
	"github.com/gw12s/Stonks/internal/data"
	"github.com/gw12s/Stonks/internal/domain"
	"github.com/gw12s/Stonks/internal/runner"
	"github.com/gw12s/Stonks/internal/store"
	"github.com/gw12s/Stonks/internal/strategy"
	"github.com/gw12s/Stonks/internal/util"
)

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols (default from config)")
	strategyFlag := flag.String("strategy", "ma-cross", "trading rule: ma-cross or momentum")
	periodFlag := flag.String("period", "", "lookback period: 1mo 3mo 6mo 1y 2y 5y 10y max (default from config)")
	workersFlag := flag.Int("workers", 4, "concurrent backtest workers")
	noSaveFlag := flag.Bool("no-save", false, "skip persisting run results to SQLite")
	flag.Parse()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfgPath := "config/stonks.yaml"
	if p := os.Getenv("STONKS_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	symbols := cfg.Watch.Symbols
	if *symbolsFlag != "" {
		symbols = splitSymbols(*symbolsFlag)
	}
	if len(symbols) == 0 {
		log.Fatal("no symbols to backtest")
	}

	period := domain.Period(cfg.Watch.Period)
	if *periodFlag != "" {
		period = domain.Period(*periodFlag)
	}
	if !period.Valid() {
		log.Fatalf("invalid period %q", period)
	}

	// Build the strategy registry from configured parameters.
	registry := strategy.NewRegistry()

	maCross, err := strategy.NewMACross(cfg.Strategy.ShortWindow, cfg.Strategy.LongWindow, logger)
	if err != nil {
		log.Fatalf("building ma-cross rule: %v", err)
	}
	registry.Register(maCross)

	momentum, err := strategy.NewMomentum(cfg.Strategy.MomentumWindow, cfg.Strategy.MomentumThreshold, logger)
	if err != nil {
		log.Fatalf("building momentum rule: %v", err)
	}
	registry.Register(momentum)

	var strategyName string
	switch *strategyFlag {
	case "ma-cross":
		strategyName = maCross.Name()
	case "momentum":
		strategyName = momentum.Name()
	default:
		log.Fatalf("unknown strategy %q (registered: %s)", *strategyFlag, strings.Join(registry.List(), ", "))
	}

	// Provider chain: Alpaca behind a TTL cache with Parquet write-through.
	pstore := store.NewParquetStore(cfg.Storage.DataDir)
	alpaca := data.NewAlpacaProvider(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		cfg.Data.RateLimitPerMin,
		cfg.Data.FetchRetries,
	)
	provider := data.NewCachedProvider(alpaca, pstore, time.Duration(cfg.Data.CacheTTLHours)*time.Hour)

	engineCfg := backtest.Config{
		InitialCapital: cfg.Backtest.InitialCapital,
		Commission:     cfg.Backtest.Commission,
		RiskFreeRate:   cfg.Backtest.RiskFreeRate,
	}

	tasks := make([]runner.Task, 0, len(symbols))
	for _, sym := range symbols {
		tasks = append(tasks, runner.Task{Symbol: sym, Strategy: strategyName, Period: period})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("starting backtests",
		"symbols", len(tasks),
		"strategy", strategyName,
		"period", string(period),
	)

	r := runner.New(provider, registry, engineCfg, *workersFlag)
	outcomes := r.Run(ctx, tasks)

	var results *store.SQLiteStore
	if !*noSaveFlag {
		results, err = store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("opening results store: %v", err)
		}
		defer results.Close()
	}

	failed := 0
	for _, out := range outcomes {
		if out.Err != nil {
			failed++
			slog.Error("backtest failed", "symbol", out.Task.Symbol, "err", out.Err)
			continue
		}

		printReport(out)

		if results != nil {
			rec := &store.RunRecord{
				Symbol:         out.Task.Symbol,
				Strategy:       out.Task.Strategy,
				Period:         out.Task.Period,
				InitialCapital: engineCfg.InitialCapital,
				Commission:     engineCfg.Commission,
				Metrics:        out.Result.Metrics,
			}
			if err := results.SaveRun(ctx, rec); err != nil {
				slog.Error("saving run failed", "symbol", out.Task.Symbol, "err", err)
			}
		}
	}

	if failed > 0 {
		slog.Warn("some backtests failed", "failed", failed, "total", len(outcomes))
		os.Exit(1)
	}
}

// printReport writes a plain-text metrics summary for one backtest.
func printReport(out runner.Outcome) {
	m := out.Result.Metrics
	eq := out.Result.Equity

	fmt.Printf("\n=== %s (%s, %s) ===\n", out.Task.Symbol, out.Task.Strategy, out.Task.Period)
	fmt.Printf("  Bars:                  %d\n", len(out.Bars))
	if len(eq) > 0 {
		first, last := eq[0], eq[len(eq)-1]
		fmt.Printf("  Span:                  %s to %s\n",
			first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))
		fmt.Printf("  Final portfolio value: %.2f\n", last.PortfolioValue)
	}
	fmt.Printf("  Total return:          %+.2f%%\n", m.TotalReturn*100)
	fmt.Printf("  Buy & hold return:     %+.2f%%\n", m.BuyHoldReturn*100)
	fmt.Printf("  Excess return:         %+.2f%%\n", m.ExcessReturn*100)
	fmt.Printf("  Annualized volatility: %.2f%%\n", m.AnnualizedVolatility*100)
	fmt.Printf("  Sharpe ratio:          %.2f\n", m.SharpeRatio)
	fmt.Printf("  Max drawdown:          %.2f%%\n", m.MaxDrawdown*100)
	fmt.Printf("  Win rate:              %.2f%%\n", m.WinRate*100)
	fmt.Printf("  Trading days active:   %d\n", m.TotalTrades)
}

func splitSymbols(s string) []string {
	var symbols []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			symbols = append(symbols, strings.ToUpper(part))
		}
	}
	return symbols
}
