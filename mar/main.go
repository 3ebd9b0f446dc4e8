// Command mar analyses the risk and performance of a price panel.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/marisk/cmd"
	"github.com/google/subcommands"
)

func main() {
	// answers shell completion requests, and exits, when run by the shell
	cmd.Completion().Complete("mar")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commander.Execute(ctx)
	stop()
	os.Exit(int(code))
}
