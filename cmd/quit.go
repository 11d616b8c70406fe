package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// quitCmd ends the session under one of its names: quit, exit or EOF.
type quitCmd struct {
	sh   *Shell
	name string
}

func (c *quitCmd) Name() string   { return c.name }
func (*quitCmd) Synopsis() string { return "close the ledger and leave" }
func (c *quitCmd) Usage() string {
	return c.name + `

Close the ledger and end the session.
`
}

func (c *quitCmd) SetFlags(f *flag.FlagSet) {}

func (c *quitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.sh.done = true
	if err := c.sh.Close(); err != nil {
		return c.sh.failure(c.Name(), err)
	}
	fmt.Fprintln(c.sh.out, "Bye.")
	return subcommands.ExitSuccess
}
