package marisk

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Scenario maps asset identifiers to a proportional price shock (-0.10 is a 10% drop).
type Scenario map[string]float64

// ApplyShock returns a copy of prices where each shocked asset column is multiplied by (1+factor).
//
// Every asset of the scenario is checked before anything is applied: an
// unknown asset fails with an *UnknownAssetError and no shocked panel exists.
func ApplyShock(prices *Panel, shocks Scenario) (*Panel, error) {
	// sorted, so that the reported asset does not depend on map order
	for _, asset := range slices.Sorted(maps.Keys(shocks)) {
		if !prices.Has(asset) {
			return nil, &UnknownAssetError{Asset: asset}
		}
	}
	factors := make([]float64, prices.Width())
	for j := range factors {
		factors[j] = 1
	}
	for asset, shock := range shocks {
		j, _ := prices.Index(asset)
		factors[j] = 1 + shock
	}
	return prices.mapColumns(func(j int, v float64) float64 { return v * factors[j] }), nil
}

// PortfolioValue values a fixed-weight portfolio on every date: the dot product of weights with each price row.
func PortfolioValue(weights Weights, prices *Panel) (Series, error) {
	if len(weights) != prices.Width() {
		return Series{}, &ShapeMismatchError{Want: prices.Width(), Got: len(weights)}
	}
	values := make([]float64, prices.Len())
	for t := range values {
		values[t] = weights.dot(prices.row(t))
	}
	return NewSeries(prices.dates, values), nil
}

// StressTest values the portfolio against the shocked prices.
func StressTest(prices *Panel, weights Weights, shocks Scenario) (Series, error) {
	shocked, err := ApplyShock(prices, shocks)
	if err != nil {
		return Series{}, err
	}
	return PortfolioValue(weights, shocked)
}

// Names of the example scenarios.
const (
	ScenarioDown10 = "down_10"
	ScenarioUp10   = "up_10"
	ScenarioMixed  = "mixed"
)

// ExampleShocks returns three demonstration scenarios over the panel assets:
// a uniform -10%, a uniform +10%, and a mix alternating -10% on even columns and +5% on odd columns.
func ExampleShocks(prices *Panel) map[string]Scenario {
	down, up, mixed := Scenario{}, Scenario{}, Scenario{}
	for j, asset := range prices.assets {
		down[asset] = -0.10
		up[asset] = 0.10
		if j%2 == 0 {
			mixed[asset] = -0.10
		} else {
			mixed[asset] = 0.05
		}
	}
	return map[string]Scenario{
		ScenarioDown10: down,
		ScenarioUp10:   up,
		ScenarioMixed:  mixed,
	}
}

// ParseScenario reads a scenario written as comma separated asset=shock pairs, e.g. "SPY=-0.2,GLD=0.05".
func ParseScenario(s string) (Scenario, error) {
	sc := Scenario{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		asset, shock, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid shock %q want asset=factor", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(shock), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shock factor for %q: %w", asset, err)
		}
		sc[strings.TrimSpace(asset)] = f
	}
	return sc, nil
}

// String formats the scenario in the ParseScenario syntax, assets sorted.
func (s Scenario) String() string {
	parts := make([]string, 0, len(s))
	for _, asset := range slices.Sorted(maps.Keys(s)) {
		parts = append(parts, asset+"="+strconv.FormatFloat(s[asset], 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}
