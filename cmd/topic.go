package cmd

import (
	"context"
	"flag"

	"github.com/etnz/jnab/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{ sh *Shell }

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [<topic>...]

Show documentation for the given topics, '*' for all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}
	c.sh.printMarkdown(doc)

	return subcommands.ExitSuccess
}
