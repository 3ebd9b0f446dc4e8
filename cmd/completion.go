package cmd

import (
	"flag"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
//
// Flags are read from the registered FlagSets, so that they never drift from
// the commands; a few of them get a smarter predictor.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		if c.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(append(topics, "readme"))
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// smartPredictors are predictors by flag name.
var smartPredictors = map[string]complete.Predictor{
	"config":   predict.Files("*.yaml"),
	"prices":   predict.Files("*.csv"),
	"o":        predict.Files("*.csv"),
	"returns":  predict.Files("*.csv"),
	"csv":      predict.Files("*.csv"),
	"png":      predict.Files("*.png"),
	"scenario": predict.Set{marisk.ScenarioDown10, marisk.ScenarioUp10, marisk.ScenarioMixed},
	"strategy": predict.Set{marisk.StrategyEqualWeight, marisk.StrategyFixedMix, marisk.StrategyStaticMinVar},
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := smartPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
