// Package marisk computes multi-asset portfolio risk and performance analytics
// from historical price series.
//
// The package is a pure, stateless engine:
//   - Panels: immutable date × asset tables of prices or returns.
//   - Risk metrics: annualized return and volatility, Sharpe ratio and maximum
//     drawdown of a return series.
//   - Rolling statistics: trailing-window mean, volatility and Sharpe ratio.
//   - Stress testing: proportional price shocks and revaluation of a fixed-weight portfolio.
//   - Portfolio construction: equal weight, 60/40 fixed mix, static and rolling
//     minimum-variance weights, and the comparison of their performance.
//
// Ratios that cannot be computed (zero volatility, too short windows) are
// reported as undefined Optional values instead of NaN.
//
// Data acquisition lives in the loader package, presentation in renderer, and
// the `mar` command-line tool wires them together.
package marisk
