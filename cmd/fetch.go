package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/marisk/config"
	"github.com/etnz/marisk/loader"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// fetchCmd downloads adjusted close prices into a CSV price panel.
type fetchCmd struct {
	tickers string
	output  string
	returns string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download prices from EODHD into a CSV panel" }
func (*fetchCmd) Usage() string {
	return `mar fetch [-tickers <SPY.US,IEF.US,...>] [-o <file>] [-returns <file>]

  Downloads the adjusted close prices of every ticker from eodhd.com, aligns
  them on the union of their dates (forward-filling gaps) and writes the panel.

  Requires the ` + config.EnvAPIKey + ` environment variable or the api_key configuration.
  Responses are cached for the day in the configured cache_dir.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tickers, "tickers", "", "comma separated tickers, defaults to the configured tickers")
	f.StringVar(&c.output, "o", "", "output file, defaults to the configured prices file")
	f.StringVar(&c.returns, "returns", "", "also write the log returns panel to this file")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tickers := cfg.Tickers
	if c.tickers != "" {
		tickers = splitList(c.tickers)
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "no tickers: use -tickers or the tickers configuration")
		return subcommands.ExitUsageError
	}
	if cfg.APIKey == "" {
		fmt.Fprintf(os.Stderr, "missing API key: set %s or api_key in %s\n", config.EnvAPIKey, *configFile)
		return subcommands.ExitUsageError
	}
	output := c.output
	if output == "" {
		output = cfg.Prices
	}
	period, err := cfg.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client := loader.NewClient(cfg.APIKey, cfg.CacheDir, cfg.RateLimit)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	prices, err := client.Panel(ctx, tickers, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := loader.SavePanel(output, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", output).Int("dates", prices.Len()).Strs("assets", prices.Assets()).Msg("prices saved")

	if c.returns != "" {
		returns, err := prices.LogReturns()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := loader.SavePanel(c.returns, returns); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Info().Str("file", c.returns).Msg("returns saved")
	}
	return subcommands.ExitSuccess
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
