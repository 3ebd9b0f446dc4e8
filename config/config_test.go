package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testPanel(t *testing.T, assets ...string) *marisk.Panel {
	t.Helper()
	row := make([]float64, len(assets))
	for j := range row {
		row[j] = float64(j + 1)
	}
	p, err := marisk.NewPanel([]date.Date{date.New(2024, 1, 1), date.New(2024, 1, 2)}, assets, [][]float64{row, row})
	require.NoError(t, err)
	return p
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")
	path := writeConfig(t, `
prices: data/prices.csv
api_key: from-file
tickers: [SPY.US, IEF.US, GLD.US]
from: 2020-01-01
to: 2024-12-31
currency: EUR
rolling_window: 90
equity: [SPY.US]
bond: [IEF.US]
scenarios:
  crash:
    SPY.US: -0.3
    GLD.US: 0.1
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/prices.csv", c.Prices)
	assert.Equal(t, "from-env", c.APIKey, "environment wins over the file")
	assert.Equal(t, []string{"SPY.US", "IEF.US", "GLD.US"}, c.Tickers)
	assert.Equal(t, "EUR", c.Currency)
	assert.Equal(t, 90, c.RollingWindow)
	assert.Equal(t, marisk.DefaultPeriodsPerYear, c.PeriodsPerYear, "defaults are kept")
	assert.Equal(t, DefaultStatsWindow, c.StatsWindow)
	assert.Equal(t, marisk.Scenario{"SPY.US": -0.3, "GLD.US": 0.1}, c.Scenarios["crash"])

	r, err := c.Range()
	require.NoError(t, err)
	assert.Equal(t, date.Range{From: date.New(2020, 1, 1), To: date.New(2024, 12, 31)}, r)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = Load(writeConfig(t, "prices: [unclosed"))
	assert.ErrorContains(t, err, "cannot parse")

	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{"periods", "periods_per_year: -1", "periods_per_year"},
		{"rolling window", "rolling_window: 1", "rolling_window"},
		{"stats window", "stats_window: 0", "stats_window"},
		{"rate", "rate_limit: 0", "rate_limit"},
		{"range", "from: 2024-02-01\nto: 2024-01-01", "end before start"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestDefaultEnv(t *testing.T) {
	t.Setenv(EnvPrices, "env.csv")
	t.Setenv(EnvCurrency, "")
	c := Default()
	assert.Equal(t, "env.csv", c.Prices)
	assert.Equal(t, DefaultCurrency, c.Currency, "empty variables are ignored")
	assert.NoError(t, c.Validate())
}

func TestSettings(t *testing.T) {
	p := testPanel(t, "GLD", "SPY", "IEF")

	c := Default()
	c.Equity = []string{"SPY"}
	c.Bond = []string{"IEF"}
	c.Workers = 2
	s, err := c.Settings(p)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, s.Equity)
	assert.Equal(t, []int{2}, s.Bond)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, marisk.DefaultRollingMinWindow, s.RollingWindow)

	c.Bond = []string{"TLT"}
	_, err = c.Settings(p)
	var unknown *marisk.UnknownAssetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "TLT", unknown.Asset)

	s, err = Default().Settings(testPanel(t, "SPY"))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, s.Equity)
	assert.Empty(t, s.Bond, "a single asset has no bond leg")
}

func TestScenario(t *testing.T) {
	p := testPanel(t, "SPY", "IEF")
	c := Default()
	c.Scenarios = map[string]marisk.Scenario{"crash": {"SPY": -0.3}}

	sc, err := c.Scenario("crash", p)
	require.NoError(t, err)
	assert.Equal(t, marisk.Scenario{"SPY": -0.3}, sc)

	sc, err = c.Scenario(marisk.ScenarioMixed, p)
	require.NoError(t, err)
	assert.Equal(t, marisk.Scenario{"SPY": -0.1, "IEF": 0.05}, sc)

	_, err = c.Scenario("nope", p)
	assert.ErrorContains(t, err, "crash, down_10, mixed, up_10")

	assert.Equal(t, []string{"crash", "down_10", "mixed", "up_10"}, c.ScenarioNames(p))
}
