package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/marisk/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded documentation.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `mar topic [-list] [<topic>...]

  Shows the documentation of the given topics, the index when none is given,
  and every topic with "*".
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "list the topic names instead of showing them")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := c.render(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// render returns the markdown to display for the topic arguments.
func (c *topicCmd) render(topics []string) (string, error) {
	if c.list {
		names, err := docs.GetAllTopics()
		if err != nil {
			return "", err
		}
		return "* " + strings.Join(names, "\n* ") + "\n", nil
	}
	if len(topics) == 0 {
		return docs.GetTopic("readme")
	}
	return docs.GetTopics(topics...)
}
