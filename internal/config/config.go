// Package config loads the stonks YAML configuration with environment
// variable overrides.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gw12s/Stonks/internal/backtest"
	"github.com/gw12s/Stonks/internal/domain"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the stonks tools.
type Config struct {
	Storage  Storage        `yaml:"storage"`
	Alpaca   Alpaca         `yaml:"alpaca"`
	Logging  Logging        `yaml:"logging"`
	Data     DataConfig     `yaml:"data"`
	Backtest BacktestConfig `yaml:"backtest"`
	Strategy StrategyConfig `yaml:"strategy"`
	Watch    WatchConfig    `yaml:"watch"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoint for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DataConfig controls price fetching and caching behaviour.
type DataConfig struct {
	CacheTTLHours   int `yaml:"cache_ttl_hours"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
	FetchRetries    int `yaml:"fetch_retries"`
}

// BacktestConfig defines the engine parameters.
type BacktestConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	Commission     float64 `yaml:"commission"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
}

// StrategyConfig holds default rule parameters.
type StrategyConfig struct {
	ShortWindow       int     `yaml:"short_window"`
	LongWindow        int     `yaml:"long_window"`
	MomentumWindow    int     `yaml:"momentum_window"`
	MomentumThreshold float64 `yaml:"momentum_threshold"`
}

// WatchConfig names the symbols and lookback evaluated by default.
type WatchConfig struct {
	Symbols   []string `yaml:"symbols"`
	Period    string   `yaml:"period"`
	Benchmark string   `yaml:"benchmark"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/stonks.db",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Data: DataConfig{
			CacheTTLHours:   1,
			RateLimitPerMin: 200,
			FetchRetries:    3,
		},
		Backtest: BacktestConfig{
			InitialCapital: backtest.DefaultInitialCapital,
			Commission:     backtest.DefaultCommission,
			RiskFreeRate:   backtest.DefaultRiskFreeRate,
		},
		Strategy: StrategyConfig{
			ShortWindow:       50,
			LongWindow:        200,
			MomentumWindow:    20,
			MomentumThreshold: 0.05,
		},
		Watch: WatchConfig{
			Symbols:   []string{"AAPL", "MSFT", "GOOGL"},
			Period:    string(domain.Period2Y),
			Benchmark: "SPY",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path over the
// defaults, then applies environment variable overrides. A missing file is
// not an error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STONKS_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("STONKS_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("STONKS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	// Canonical Alpaca SDK env vars take precedence when both are set.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
