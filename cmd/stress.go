package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/renderer"
	"github.com/google/subcommands"
)

// stressCmd values a portfolio against shocked prices.
type stressCmd struct {
	scenario string
	shock    string
	strategy string
	tail     int
	png      string
}

func (*stressCmd) Name() string     { return "stress" }
func (*stressCmd) Synopsis() string { return "stress test a portfolio against price shocks" }
func (*stressCmd) Usage() string {
	return `mar stress [-scenario <name> | -shock <asset=factor,...>] [-strategy <name>] [-png <file>]

  Multiplies the prices of every shocked asset by (1+factor) and compares the
  portfolio value at market and at shocked prices.

  Scenarios are read from the configuration, the built-in ones are down_10, up_10 and mixed.
`
}

func (c *stressCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenario, "scenario", marisk.ScenarioDown10, "name of the scenario")
	f.StringVar(&c.shock, "shock", "", "custom scenario, e.g. SPY=-0.2,GLD=0.05. Takes precedence over -scenario")
	f.StringVar(&c.strategy, "strategy", marisk.StrategyEqualWeight, "fixed-weight strategy of the portfolio")
	f.IntVar(&c.tail, "tail", 10, "number of trailing dates to display, 0 for all")
	f.StringVar(&c.png, "png", "", "also write a chart of both valuations to this PNG file")
}

func (c *stressCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	name, shocks := c.scenario, marisk.Scenario(nil)
	if c.shock != "" {
		if shocks, err = marisk.ParseScenario(c.shock); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		name = shocks.String()
	} else if shocks, err = s.cfg.Scenario(c.scenario, s.prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	weights, err := selectWeights(s.engine, c.strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	baseline, err := marisk.PortfolioValue(weights, s.prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	stressed, err := marisk.StressTest(s.prices, weights, shocks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error stress testing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	report := renderer.NewStressReport(s.periodLabel(), name, s.cfg.Currency, s.prices.Assets(), weights, shocks, baseline, stressed, c.tail)
	printMarkdown(renderer.RenderStress(report))

	if c.png != "" {
		png, err := renderer.LineChart(c.strategy+" under "+name, []string{"Baseline", "Stressed"}, baseline, stressed)
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
