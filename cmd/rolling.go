package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/loader"
	"github.com/etnz/marisk/renderer"
	"github.com/google/subcommands"
)

// rollingCmd displays the rolling statistics of a portfolio.
type rollingCmd struct {
	window   int
	riskFree optionalFloat
	strategy string
	tail     int
	png      string
	csv      string
}

func (*rollingCmd) Name() string     { return "rolling" }
func (*rollingCmd) Synopsis() string { return "display the rolling mean, volatility and Sharpe ratio of a portfolio" }
func (*rollingCmd) Usage() string {
	return `mar rolling [-window <n>] [-risk-free <rate>] [-strategy <name>] [-png <file>] [-csv <file>]

  Computes the portfolio log returns and their mean, sample volatility and
  Sharpe ratio over a trailing window. The first window-1 dates are undefined.
`
}

func (c *rollingCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.window, "window", 0, "trailing window in periods, defaults to the configured stats_window")
	f.Var(&c.riskFree, "risk-free", "risk free rate per period, defaults to the configured risk_free")
	f.StringVar(&c.strategy, "strategy", marisk.StrategyEqualWeight, "fixed-weight strategy of the portfolio")
	f.IntVar(&c.tail, "tail", 10, "number of trailing dates to display, 0 for all")
	f.StringVar(&c.png, "png", "", "also write a chart of the rolling Sharpe ratio to this PNG file")
	f.StringVar(&c.csv, "csv", "", "also write the full rolling statistics to this CSV file")
}

func (c *rollingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	window := c.window
	if window == 0 {
		window = s.cfg.StatsWindow
	}
	riskFree := c.riskFree.Or(s.cfg.RiskFree)

	weights, err := selectWeights(s.engine, c.strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	returns, err := s.engine.PortfolioReturns(weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	stats, err := rollingStats(returns, window, riskFree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.RenderRolling(renderer.NewRollingReport(s.periodLabel(), stats, riskFree, c.tail)))

	if c.csv != "" {
		out, err := os.Create(c.csv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := loader.WriteSeries(out, []string{"mean", "volatility", "sharpe"}, stats.Mean, stats.Volatility, stats.Sharpe); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.csv, err)
			return subcommands.ExitFailure
		}
	}
	if c.png != "" {
		title := fmt.Sprintf("%s rolling Sharpe (%d)", c.strategy, window)
		png, err := renderer.LineChart(title, []string{"Sharpe"}, stats.Sharpe)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := writeFile(c.png, png); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// rollingStats computes the rolling statistics, the Sharpe ratio in excess of riskFree.
func rollingStats(returns marisk.Series, window int, riskFree float64) (marisk.RollingStats, error) {
	stats, err := marisk.ComputeRollingStats(returns, window)
	if err != nil || riskFree == 0 {
		return stats, err
	}
	stats.Sharpe, err = marisk.RollingExcessSharpe(returns, window, riskFree)
	return stats, err
}
