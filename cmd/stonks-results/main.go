// Command stonks-results lists persisted backtest runs from the SQLite
// results database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/gw12s/Stonks/internal/config"
	"github.com/gw12s/Stonks/internal/store"
	"github.com/gw12s/Stonks/internal/util"
)

func main() {
	symbolFlag := flag.String("symbol", "", "filter runs by symbol")
	limitFlag := flag.Int("limit", 20, "maximum runs to list")
	flag.Parse()

	_ = godotenv.Load()

	cfgPath := "config/stonks.yaml"
	if p := os.Getenv("STONKS_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	util.SetDefault(util.NewLogger(cfg.Logging.Level, cfg.Logging.Format))

	results, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening results store: %v", err)
	}
	defer results.Close()

	symbol := strings.ToUpper(strings.TrimSpace(*symbolFlag))
	runs, err := results.ListRuns(context.Background(), symbol, *limitFlag)
	if err != nil {
		log.Fatalf("listing runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSYMBOL\tSTRATEGY\tPERIOD\tRETURN\tEXCESS\tSHARPE\tMAX DD\tWIN RATE")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%+.2f%%\t%+.2f%%\t%.2f\t%.2f%%\t%.2f%%\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Symbol,
			r.Strategy,
			r.Period,
			r.Metrics.TotalReturn*100,
			r.Metrics.ExcessReturn*100,
			r.Metrics.SharpeRatio,
			r.Metrics.MaxDrawdown*100,
			r.Metrics.WinRate*100,
		)
	}
	w.Flush()
}
