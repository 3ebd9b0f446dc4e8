package renderer

import (
	"slices"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
)

// Header is shared by every report.
type Header struct {
	Title  string
	Period string // empty for the full history
}

// Comparison is the performance comparison view.
type Comparison struct {
	Header
	Rows []ComparisonRow
}

// ComparisonRow holds the metrics of one strategy.
type ComparisonRow struct {
	Strategy string
	marisk.Metrics
}

// NewComparison orders the strategies of c by marisk.StrategyNames, unknown names last in alphabetical order.
func NewComparison(period string, c marisk.Comparison) *Comparison {
	v := &Comparison{Header: Header{Title: "Performance Comparison", Period: period}}
	for _, name := range orderedStrategies(c) {
		v.Rows = append(v.Rows, ComparisonRow{Strategy: name, Metrics: c[name]})
	}
	return v
}

func orderedStrategies[V any](m map[string]V) []string {
	var names []string
	for _, name := range marisk.StrategyNames {
		if _, ok := m[name]; ok {
			names = append(names, name)
		}
	}
	var others []string
	for name := range m {
		if !slices.Contains(marisk.StrategyNames, name) {
			others = append(others, name)
		}
	}
	slices.Sort(others)
	return append(names, others...)
}

// WeightsReport is the allocation of each strategy over the panel assets.
type WeightsReport struct {
	Header
	Assets []string
	Rows   []WeightsRow
}

// WeightsRow is one strategy allocation.
type WeightsRow struct {
	Strategy string
	Weights  []marisk.Optional
	Total    marisk.Optional
}

// NewWeightsReport builds the allocation table; strategies follow marisk.StrategyNames order.
func NewWeightsReport(period string, assets []string, weights map[string]marisk.Weights) *WeightsReport {
	v := &WeightsReport{Header: Header{Title: "Portfolio Weights", Period: period}, Assets: assets}
	for _, name := range orderedStrategies(weights) {
		w := weights[name]
		row := WeightsRow{Strategy: name, Total: marisk.Some(w.Sum())}
		for _, x := range w {
			row.Weights = append(row.Weights, marisk.Some(x))
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// StressReport compares a portfolio valued at market prices and at shocked prices.
type StressReport struct {
	Header
	Scenario string
	Currency string
	Assets   []StressAsset
	Rows     []StressRow
}

// StressAsset is the weight and shock of one asset.
type StressAsset struct {
	Asset  string
	Weight marisk.Optional
	Shock  float64
}

// StressRow is the portfolio value on one date.
type StressRow struct {
	Date     date.Date
	Baseline float64
	Stressed float64
	Impact   marisk.Optional // Stressed/Baseline - 1
}

// NewStressReport keeps the last tail dates of baseline and stressed; tail <= 0 keeps them all.
func NewStressReport(period, name, currency string, assets []string, weights marisk.Weights, shocks marisk.Scenario, baseline, stressed marisk.Series, tail int) *StressReport {
	v := &StressReport{
		Header:   Header{Title: "Stress Test", Period: period},
		Scenario: name,
		Currency: currency,
	}
	for j, asset := range assets {
		a := StressAsset{Asset: asset, Shock: shocks[asset]}
		if j < len(weights) {
			a.Weight = marisk.Some(weights[j])
		}
		v.Assets = append(v.Assets, a)
	}
	for t := tailStart(baseline.Len(), tail); t < baseline.Len() && t < stressed.Len(); t++ {
		b, _ := baseline.Values[t].Get()
		s, _ := stressed.Values[t].Get()
		impact := marisk.Undefined()
		if b != 0 {
			impact = marisk.Some(s/b - 1)
		}
		v.Rows = append(v.Rows, StressRow{Date: baseline.Dates[t], Baseline: b, Stressed: s, Impact: impact})
	}
	return v
}

// RollingReport is the tail of the rolling statistics of a portfolio.
type RollingReport struct {
	Header
	Window   int
	RiskFree float64
	Rows     []RollingRow
}

// RollingRow holds the rolling statistics on one date.
type RollingRow struct {
	Date       date.Date
	Mean       marisk.Optional
	Volatility marisk.Optional
	Sharpe     marisk.Optional
}

// NewRollingReport keeps the last tail dates of stats; tail <= 0 keeps them all.
func NewRollingReport(period string, stats marisk.RollingStats, riskFree float64, tail int) *RollingReport {
	v := &RollingReport{
		Header:   Header{Title: "Rolling Statistics", Period: period},
		Window:   stats.Window,
		RiskFree: riskFree,
	}
	n := stats.Mean.Len()
	for t := tailStart(n, tail); t < n; t++ {
		v.Rows = append(v.Rows, RollingRow{
			Date:       stats.Mean.Dates[t],
			Mean:       stats.Mean.Values[t],
			Volatility: stats.Volatility.Values[t],
			Sharpe:     stats.Sharpe.Values[t],
		})
	}
	return v
}

func tailStart(n, tail int) int {
	if tail <= 0 || tail >= n {
		return 0
	}
	return n - tail
}
