package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type selCmd struct{ sh *Shell }

func (*selCmd) Name() string     { return "sel" }
func (*selCmd) Synopsis() string { return "select the current account" }
func (*selCmd) Usage() string {
	return `sel <id|name>

Select the current account, by ID or by name. Names are case insensitive.
`
}

func (c *selCmd) SetFlags(f *flag.FlagSet) {}

func (*selCmd) positionalOnly() {}

func (c *selCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing account ID or name"})
	}
	a, err := c.sh.lookup(f.Args())
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}
	c.sh.current = a
	c.sh.log.Info("account selected", "id", a.ID(), "name", a.Name())
	fmt.Fprintln(c.sh.out, a)
	return subcommands.ExitSuccess
}
