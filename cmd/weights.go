package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type weightsCmd struct{}

func (*weightsCmd) Name() string     { return "weights" }
func (*weightsCmd) Synopsis() string { return "display the allocation of the fixed-weight strategies" }
func (*weightsCmd) Usage() string {
	return `mar weights

  Displays the equal weight, 60/40 and static minimum-variance allocations.
  Minimum-variance weights may be negative (short) or above 100% (leveraged).
`
}

func (c *weightsCmd) SetFlags(f *flag.FlagSet) {}

func (c *weightsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	weights, err := strategyWeights(s.engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderWeights(renderer.NewWeightsReport(s.periodLabel(), s.prices.Assets(), weights)))
	return subcommands.ExitSuccess
}

// strategyWeights returns the weights of every fixed-weight strategy.
// Static minimum variance is left out when the covariance is degenerate.
func strategyWeights(e *marisk.Engine) (map[string]marisk.Weights, error) {
	settings := e.Settings()
	mix, err := e.FixedMix(settings.Equity, settings.Bond)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", marisk.StrategyFixedMix, err)
	}
	weights := map[string]marisk.Weights{
		marisk.StrategyEqualWeight: e.EqualWeight(),
		marisk.StrategyFixedMix:    mix,
	}
	mv, err := e.StaticMinVariance()
	switch {
	case errors.Is(err, marisk.ErrDegenerateCovariance):
		log.Warn().Err(err).Msgf("no %s weights", marisk.StrategyStaticMinVar)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", marisk.StrategyStaticMinVar, err)
	default:
		weights[marisk.StrategyStaticMinVar] = mv
	}
	return weights, nil
}
