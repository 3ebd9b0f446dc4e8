package marisk

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Strategy names of the performance comparison.
const (
	StrategyEqualWeight   = "Equal Weight"
	StrategyFixedMix      = "60/40"
	StrategyStaticMinVar  = "Static Min Var"
	StrategyRollingMinVar = "Rolling Min Var"
)

// DefaultRollingMinWindow is the trailing window of the rolling minimum-variance strategy.
const DefaultRollingMinWindow = 60

// StrategyNames lists the compared strategies in display order.
var StrategyNames = []string{StrategyEqualWeight, StrategyFixedMix, StrategyStaticMinVar, StrategyRollingMinVar}

// Settings parameterize an Engine.
type Settings struct {
	PeriodsPerYear int   // periods used to annualize metrics
	RollingWindow  int   // trailing window of the rolling minimum-variance strategy
	Equity         []int // equity columns of the 60/40 mix
	Bond           []int // bond columns of the 60/40 mix
	Workers        int   // concurrent windows in RollingMinVariance, <= 0 is unbounded
}

// DefaultSettings returns daily annualization, a 60-day rolling window and
// the first two columns as the equity and bond legs of the fixed mix.
func DefaultSettings() Settings {
	return Settings{
		PeriodsPerYear: DefaultPeriodsPerYear,
		RollingWindow:  DefaultRollingMinWindow,
		Equity:         []int{0},
		Bond:           []int{1},
		Workers:        runtime.NumCPU(),
	}
}

// Comparison maps strategy names to their metrics.
type Comparison map[string]Metrics

// Engine builds portfolio weights and performance figures from a price panel and its return panel.
//
// Panels are immutable, so an Engine is safe for concurrent use.
type Engine struct {
	prices   *Panel
	returns  *Panel
	settings Settings
}

// NewEngine derives the log-return panel from prices and returns an Engine over both.
func NewEngine(prices *Panel, settings Settings) (*Engine, error) {
	if err := checkPrices(prices); err != nil {
		return nil, err
	}
	returns, err := prices.LogReturns()
	if err != nil {
		return nil, err
	}
	return &Engine{prices: prices, returns: returns, settings: settings}, nil
}

// NewEngineWithReturns returns an Engine over prices and a precomputed return panel of the same shape.
func NewEngineWithReturns(prices, returns *Panel, settings Settings) (*Engine, error) {
	if err := checkPrices(prices); err != nil {
		return nil, err
	}
	if returns.Width() != prices.Width() {
		return nil, &ShapeMismatchError{Want: prices.Width(), Got: returns.Width()}
	}
	if !prices.sameShape(returns) {
		return nil, fmt.Errorf("%w: returns are not aligned with prices", ErrInvalidPanel)
	}
	return &Engine{prices: prices, returns: returns, settings: settings}, nil
}

func checkPrices(prices *Panel) error {
	if prices.Width() == 0 {
		return fmt.Errorf("%w: no asset", ErrInsufficientData)
	}
	if prices.Len() < 2 {
		return fmt.Errorf("%w: %d dates, at least 2 required", ErrInsufficientData, prices.Len())
	}
	return nil
}

// Prices returns the price panel.
func (e *Engine) Prices() *Panel { return e.prices }

// Returns returns the return panel.
func (e *Engine) Returns() *Panel { return e.returns }

// Settings returns the engine settings.
func (e *Engine) Settings() Settings { return e.settings }

// EqualWeight allocates 1/N to each asset.
func (e *Engine) EqualWeight() Weights { return EqualWeight(e.prices.Width()) }

// FixedMix allocates 60% across the equity columns and 40% across the bond columns.
func (e *Engine) FixedMix(equity, bond []int) (Weights, error) {
	return FixedMix(e.prices.Width(), equity, bond)
}

// FixedMixOf is FixedMix with asset identifiers instead of columns.
func (e *Engine) FixedMixOf(equity, bond []string) (Weights, error) {
	eq, err := Columns(e.prices, equity)
	if err != nil {
		return nil, err
	}
	bd, err := Columns(e.prices, bond)
	if err != nil {
		return nil, err
	}
	return e.FixedMix(eq, bd)
}

// Columns resolves asset identifiers into column indexes.
func Columns(p *Panel, assets []string) ([]int, error) {
	cols := make([]int, len(assets))
	for i, a := range assets {
		j, ok := p.Index(a)
		if !ok {
			return nil, &UnknownAssetError{Asset: a}
		}
		cols[i] = j
	}
	return cols, nil
}

// StaticMinVariance returns the minimum-variance weights over the full return panel.
func (e *Engine) StaticMinVariance() (Weights, error) { return MinVarianceWeights(e.returns) }

// RollingMinVariance values, on every date t >= window, the minimum-variance portfolio
// computed from the trailing returns [t-window, t).
//
// Windows are independent and computed concurrently. Dates before the first
// full window, and windows whose covariance is degenerate, are left out of the result.
func (e *Engine) RollingMinVariance(window int) (Series, error) {
	if window < 2 {
		return Series{}, fmt.Errorf("%w: %d, a covariance needs at least 2 observations", ErrInvalidWindow, window)
	}
	n := e.prices.Len()
	values := make([]Optional, n)

	var g errgroup.Group
	if e.settings.Workers > 0 {
		g.SetLimit(e.settings.Workers)
	}
	for t := window; t < n; t++ {
		g.Go(func() error {
			w, err := minVariance(e.returns.matrix(t-window, t))
			if errors.Is(err, ErrDegenerateCovariance) {
				return nil // undefined point
			}
			if err != nil {
				return fmt.Errorf("window ending %v: %w", e.returns.dates[t-1], err)
			}
			values[t] = Some(w.dot(e.prices.row(t)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Series{}, err
	}
	return Series{Dates: e.prices.Dates(), Values: values}.TrimUndefined(), nil
}

// PortfolioReturns returns the portfolio log returns: the return panel rows dotted with weights.
func (e *Engine) PortfolioReturns(weights Weights) (Series, error) {
	return PortfolioValue(weights, e.returns)
}

// PerformanceComparison runs every strategy of StrategyNames over the panel and
// computes the metrics of their simple period returns.
//
// A degenerate covariance does not abort the comparison: the static
// minimum-variance strategy then has undefined metrics.
func (e *Engine) PerformanceComparison() (Comparison, error) {
	mix, err := e.FixedMix(e.settings.Equity, e.settings.Bond)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StrategyFixedMix, err)
	}
	weights := map[string]Weights{
		StrategyEqualWeight: e.EqualWeight(),
		StrategyFixedMix:    mix,
	}
	mv, err := e.StaticMinVariance()
	switch {
	case errors.Is(err, ErrDegenerateCovariance):
		// no weights, so every metric of the strategy is undefined
	case err != nil:
		return nil, fmt.Errorf("%s: %w", StrategyStaticMinVar, err)
	default:
		weights[StrategyStaticMinVar] = mv
	}
	values := map[string]Series{StrategyStaticMinVar: {}}
	for name, w := range weights {
		if values[name], err = PortfolioValue(w, e.prices); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if values[StrategyRollingMinVar], err = e.RollingMinVariance(e.settings.RollingWindow); err != nil {
		return nil, fmt.Errorf("%s: %w", StrategyRollingMinVar, err)
	}

	c := make(Comparison, len(values))
	for name, v := range values {
		c[name] = PortfolioMetrics(v.SimpleReturns().Defined(), e.settings.PeriodsPerYear)
	}
	return c, nil
}
