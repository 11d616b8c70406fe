package cmd

import (
	"context"
	"flag"

	"github.com/etnz/jnab/renderer"
	"github.com/google/subcommands"
)

type txCmd struct{ sh *Shell }

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of the current account" }
func (*txCmd) Usage() string {
	return `tx

List the transactions of the current account, in recording order.
`
}

func (*txCmd) needsAccount() {}

func (c *txCmd) SetFlags(f *flag.FlagSet) {}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := c.sh.current
	txs, err := c.sh.store.Transactions(a.ID())
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}
	c.sh.printMarkdown(renderer.TransactionsMarkdown(a, txs))
	return subcommands.ExitSuccess
}
