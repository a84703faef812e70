// Package runner executes backtests for symbol/strategy pairs across a
// bounded pool of workers.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gw12s/Stonks/internal/backtest"
	"github.com/gw12s/Stonks/internal/data"
	"github.com/gw12s/Stonks/internal/domain"
	"github.com/gw12s/Stonks/internal/strategy"
)

// Task names one backtest to run: a symbol, a registered strategy, and
// the data lookback period.
type Task struct {
	Symbol   string
	Strategy string
	Period   domain.Period
}

// Outcome is the result of one Task. Err is set when the task failed;
// the remaining fields are only valid when Err is nil.
type Outcome struct {
	Task    Task
	Bars    []domain.Bar
	Signals []domain.SignalPoint
	Result  *backtest.Result
	Err     error
}

// Runner fans Tasks out to a bounded number of workers. Each worker
// fetches bars, generates signals, and runs the backtest engine. A
// failure in one task never aborts the others.
type Runner struct {
	provider data.Provider
	registry *strategy.Registry
	cfg      backtest.Config
	workers  int
	log      *slog.Logger
}

// New creates a Runner. workers values below 1 are clamped to 1.
func New(provider data.Provider, registry *strategy.Registry, cfg backtest.Config, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		provider: provider,
		registry: registry,
		cfg:      cfg,
		workers:  workers,
		log:      slog.Default().With("component", "runner"),
	}
}

// Run executes all tasks and returns one Outcome per task, in task
// order. It stops dispatching new tasks once ctx is cancelled; tasks not
// started carry ctx.Err() in their Outcome.
func (r *Runner) Run(ctx context.Context, tasks []Task) []Outcome {
	outcomes := make([]Outcome, len(tasks))

	taskCh := make(chan int, len(tasks))
	for i := range tasks {
		taskCh <- i
	}
	close(taskCh)

	var wg sync.WaitGroup
	workers := r.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range taskCh {
				if err := ctx.Err(); err != nil {
					outcomes[i] = Outcome{Task: tasks[i], Err: err}
					continue
				}
				outcomes[i] = r.runOne(ctx, tasks[i])
			}
		}()
	}
	wg.Wait()

	return outcomes
}

// runOne executes a single task end to end.
func (r *Runner) runOne(ctx context.Context, task Task) Outcome {
	out := Outcome{Task: task}

	gen, ok := r.registry.Get(task.Strategy)
	if !ok {
		out.Err = &domain.ConfigError{Param: "strategy", Reason: fmt.Sprintf("unknown strategy %q", task.Strategy)}
		return out
	}

	bars, err := r.provider.GetBars(ctx, task.Symbol, task.Period)
	if err != nil {
		out.Err = fmt.Errorf("fetching %s: %w", task.Symbol, err)
		return out
	}
	if len(bars) == 0 {
		r.log.Warn("no bars for symbol, skipping", "symbol", task.Symbol, "period", string(task.Period))
		out.Err = &domain.InsufficientDataError{Have: 0, Need: 2}
		return out
	}
	if err := domain.ValidateSeries(bars); err != nil {
		out.Err = fmt.Errorf("validating series for %s: %w", task.Symbol, err)
		return out
	}

	signals, err := gen.Generate(bars)
	if err != nil {
		out.Err = fmt.Errorf("generating signals for %s: %w", task.Symbol, err)
		return out
	}

	result, err := backtest.Run(bars, signals, r.cfg)
	if err != nil {
		out.Err = fmt.Errorf("backtesting %s: %w", task.Symbol, err)
		return out
	}

	out.Bars = bars
	out.Signals = signals
	out.Result = result

	r.log.Info("backtest complete",
		"symbol", task.Symbol,
		"strategy", task.Strategy,
		"bars", len(bars),
		"totalReturn", result.Metrics.TotalReturn,
	)
	return out
}
