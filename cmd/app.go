// Package cmd implements the mar command line: risk and performance analytics of a price panel.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/marisk"
	"github.com/etnz/marisk/config"
	"github.com/etnz/marisk/date"
	"github.com/etnz/marisk/loader"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Commands lists the subcommands, in help order.
var Commands = []subcommands.Command{
	&compareCmd{},
	&weightsCmd{},
	&stressCmd{},
	&rollingCmd{},
	&fetchCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "marisk.yaml", "Path to the configuration file")
	pricesFile = flag.String("prices", "", "Path to the CSV price panel. Overrides the configuration and "+config.EnvPrices)
	fromFlag   = flag.String("from", "", "First date of the analysis (YYYY-MM-DD)")
	toFlag     = flag.String("to", "", "Last date of the analysis (YYYY-MM-DD)")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

// SetupLogging configures the global logger to write human readable lines on stderr.
func SetupLogging() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig reads the configuration file, falling back to defaults when it does not exist,
// then applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("config", *configFile).Msg("no configuration file, using defaults")
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if *pricesFile != "" {
		cfg.Prices = *pricesFile
	}
	if *fromFlag != "" {
		cfg.From = *fromFlag
	}
	if *toFlag != "" {
		cfg.To = *toFlag
	}
	return cfg, cfg.Validate()
}

// session is what every analytics command starts from.
type session struct {
	cfg    *config.Config
	period date.Range
	prices *marisk.Panel
	engine *marisk.Engine
}

// periodLabel is the analysed period, empty when unbounded.
func (s *session) periodLabel() string {
	if s.period == (date.Range{}) {
		return ""
	}
	return s.period.String()
}

// openSession loads the configuration, the price panel restricted to the period, and its engine.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	period, err := cfg.Range()
	if err != nil {
		return nil, err
	}
	prices, err := loader.LoadPanel(cfg.Prices)
	if err != nil {
		return nil, err
	}
	prices = prices.Between(period)
	log.Debug().Str("prices", cfg.Prices).Int("dates", prices.Len()).Strs("assets", prices.Assets()).Msg("loaded")

	settings, err := cfg.Settings(prices)
	if err != nil {
		return nil, err
	}
	engine, err := marisk.NewEngine(prices, settings)
	if err != nil {
		return nil, fmt.Errorf("cannot analyse %q: %w", cfg.Prices, err)
	}
	return &session{cfg: cfg, period: period, prices: prices, engine: engine}, nil
}

// printMarkdown renders markdown for the terminal, or prints it raw when rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// writeFile writes content to filename and reports it.
func writeFile(filename string, content []byte) error {
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return err
	}
	log.Info().Str("file", filename).Int("bytes", len(content)).Msg("written")
	return nil
}
