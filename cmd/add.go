package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/jnab"
	"github.com/etnz/jnab/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	sh       *Shell
	date     date.Date
	name     string
	budget   string
	amount   int64
	transfer bool
	clear    bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction on the current account" }
func (*addCmd) Usage() string {
	return `add -n <name> -a <amount> [-d <date>] [-b <budget>] [-t] [-c]

Record a transaction on the current account and update its balance.
Amounts are whole currency units, negative for spending. The date defaults to today.
`
}

func (*addCmd) needsAccount() {}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	valueVar(f, dateValue{&c.date}, "d", "date", "transaction date, YYYY-MM-DD (default today)")
	stringVar(f, &c.name, "n", "name", "transaction name")
	stringVar(f, &c.budget, "b", "budget", "budget the transaction is assigned to")
	int64Var(f, &c.amount, "a", "amount", "amount of the transaction")
	boolVar(f, &c.transfer, "t", "transfer", "the transaction is a transfer between accounts")
	boolVar(f, &c.clear, "c", "clear", "the transaction is cleared")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: fmt.Sprintf("unexpected arguments %q", f.Args())})
	}
	name := unquote(c.name)
	if name == "" {
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing -n name"})
	}
	if !isSet(f, "a", "amount") {
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing -a amount"})
	}

	fields := map[string]any{
		jnab.TxName:     name,
		jnab.TxType:     c.transfer,
		jnab.TxBudgetID: unquote(c.budget),
		jnab.TxAmount:   c.amount,
		jnab.TxClear:    c.clear,
	}
	if !c.date.IsZero() {
		fields[jnab.TxDate] = c.date
	}
	tx, err := jnab.NewTransaction(fields)
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}

	a := c.sh.current
	if tx, err = c.sh.store.AddTransaction(a, tx); err != nil {
		return c.sh.failure(c.Name(), err)
	}
	c.sh.log.Info("transaction recorded", "account", a.ID(), "id", tx.ID, "amount", tx.Amount)
	fmt.Fprintf(c.sh.out, "Recorded %s %s %s, balance is now %s\n",
		tx.Date, tx.Name,
		jnab.FormatAmount(decimal.NewFromInt(tx.Amount), a.Currency()),
		jnab.FormatAmount(a.Balance(), a.Currency()))
	return subcommands.ExitSuccess
}
