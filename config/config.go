// Package config loads the marisk settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file.
const (
	EnvPrices   = "MARISK_PRICES"
	EnvCacheDir = "MARISK_CACHE_DIR"
	EnvAPIKey   = "EODHD_API_KEY"
	EnvCurrency = "MARISK_CURRENCY"
)

// Defaults.
const (
	DefaultPrices      = "prices.csv"
	DefaultCurrency    = "USD"
	DefaultStatsWindow = 20
	DefaultRateLimit   = 5 // requests per second
)

// Config is the content of a marisk.yaml file.
type Config struct {
	// data
	Prices    string   `yaml:"prices"`
	CacheDir  string   `yaml:"cache_dir"`
	APIKey    string   `yaml:"api_key"`
	BaseURL   string   `yaml:"base_url"`
	RateLimit float64  `yaml:"rate_limit"`
	Tickers   []string `yaml:"tickers"`
	From      string   `yaml:"from"`
	To        string   `yaml:"to"`
	Currency  string   `yaml:"currency"`

	// analytics
	PeriodsPerYear int                        `yaml:"periods_per_year"`
	RollingWindow  int                        `yaml:"rolling_window"`
	StatsWindow    int                        `yaml:"stats_window"`
	RiskFree       float64                    `yaml:"risk_free"`
	Equity         []string                   `yaml:"equity"`
	Bond           []string                   `yaml:"bond"`
	Workers        int                        `yaml:"workers"`
	Scenarios      map[string]marisk.Scenario `yaml:"scenarios"`
}

// Default returns the configuration used when there is no file, with environment overrides applied.
func Default() *Config {
	c := &Config{
		Prices:         DefaultPrices,
		RateLimit:      DefaultRateLimit,
		Currency:       DefaultCurrency,
		PeriodsPerYear: marisk.DefaultPeriodsPerYear,
		RollingWindow:  marisk.DefaultRollingMinWindow,
		StatsWindow:    DefaultStatsWindow,
	}
	c.applyEnv()
	return c
}

// Load reads a YAML file over the defaults, then applies the environment overrides.
//
// A missing file is reported with an error matching fs.ErrNotExist.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvPrices:   &c.Prices,
		EnvCacheDir: &c.CacheDir,
		EnvAPIKey:   &c.APIKey,
		EnvCurrency: &c.Currency,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

// Validate checks values that would only fail deep inside a computation.
func (c *Config) Validate() error {
	var errs []error
	if c.PeriodsPerYear <= 0 {
		errs = append(errs, fmt.Errorf("periods_per_year must be positive, got %d", c.PeriodsPerYear))
	}
	if c.RollingWindow < 2 {
		errs = append(errs, fmt.Errorf("rolling_window must be at least 2, got %d", c.RollingWindow))
	}
	if c.StatsWindow < 1 {
		errs = append(errs, fmt.Errorf("stats_window must be at least 1, got %d", c.StatsWindow))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit))
	}
	if _, err := c.Range(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Range returns the from..to date range, open when a bound is empty.
func (c *Config) Range() (date.Range, error) {
	return date.ParseRange(c.From, c.To)
}

// Settings resolves the configuration into engine settings for the panel.
//
// Equity and bond asset names must be panel columns, otherwise an *marisk.UnknownAssetError is returned.
// Without names, the first column is the equity leg and the second the bond leg.
func (c *Config) Settings(prices *marisk.Panel) (marisk.Settings, error) {
	s := marisk.DefaultSettings()
	if c.PeriodsPerYear > 0 {
		s.PeriodsPerYear = c.PeriodsPerYear
	}
	if c.RollingWindow > 0 {
		s.RollingWindow = c.RollingWindow
	}
	if c.Workers != 0 {
		s.Workers = c.Workers
	}
	var err error
	if len(c.Equity) > 0 {
		if s.Equity, err = marisk.Columns(prices, c.Equity); err != nil {
			return marisk.Settings{}, fmt.Errorf("equity: %w", err)
		}
	}
	if len(c.Bond) > 0 {
		if s.Bond, err = marisk.Columns(prices, c.Bond); err != nil {
			return marisk.Settings{}, fmt.Errorf("bond: %w", err)
		}
	} else if prices.Width() < 2 {
		s.Bond = nil
	}
	return s, nil
}

// Scenario returns a named scenario: a configured one first, then the examples of marisk.ExampleShocks.
func (c *Config) Scenario(name string, prices *marisk.Panel) (marisk.Scenario, error) {
	if sc, ok := c.Scenarios[name]; ok {
		return sc, nil
	}
	examples := marisk.ExampleShocks(prices)
	if sc, ok := examples[name]; ok {
		return sc, nil
	}
	return nil, fmt.Errorf("unknown scenario %q, available: %s", name, strings.Join(c.ScenarioNames(prices), ", "))
}

// ScenarioNames lists the configured and example scenario names, sorted.
func (c *Config) ScenarioNames(prices *marisk.Panel) []string {
	names := slices.Collect(maps.Keys(c.Scenarios))
	for name := range marisk.ExampleShocks(prices) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
