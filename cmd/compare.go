package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marisk/renderer"
	"github.com/google/subcommands"
)

// compareCmd compares the performance of the allocation strategies.
type compareCmd struct {
	json bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the performance of the allocation strategies" }
func (*compareCmd) Usage() string {
	return `mar compare [-json]

  Values the equal weight, 60/40, static and rolling minimum-variance portfolios
  over the price panel and displays their annualized return, volatility,
  Sharpe ratio and maximum drawdown.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the metrics as JSON")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	comparison, err := s.engine.PerformanceComparison()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing strategies: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(comparison); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderComparison(renderer.NewComparison(s.periodLabel(), comparison)))
	return subcommands.ExitSuccess
}
