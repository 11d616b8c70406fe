package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/jnab"
	"github.com/google/subcommands"
)

type newCmd struct {
	sh       *Shell
	name     string
	typ      jnab.AccountType
	currency jnab.Currency
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create an account" }
func (*newCmd) Usage() string {
	return fmt.Sprintf(`new -n <name> -t <type> -c <currency>

Create an active account with a zero balance. Types are %s, currencies are %s.
`, jnab.AccountTypeNames(", "), jnab.CurrencyNames(", "))
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	stringVar(f, &c.name, "n", "name", "account name")
	valueVar(f, &c.typ, "t", "type", "account type: "+jnab.AccountTypeNames(", "))
	valueVar(f, &c.currency, "c", "currency", "account currency: "+jnab.CurrencyNames(", "))
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := unquote(c.name)
	switch {
	case f.NArg() > 0:
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: fmt.Sprintf("unexpected arguments %q", f.Args())})
	case name == "":
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing -n name"})
	case !c.typ.Valid():
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing -t type"})
	case !c.currency.Valid():
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing -c currency"})
	}

	a, err := jnab.Create(map[string]any{
		"NAME":     name,
		"TYPE":     c.typ,
		"CURRENCY": c.currency,
		"RATE_TO":  1,
		"BALANCE":  0,
		"ACTIVE":   true,
	})
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}
	if a, err = c.sh.store.AddAccount(a); err != nil {
		return c.sh.failure(c.Name(), err)
	}
	c.sh.log.Info("account created", "id", a.ID(), "name", a.Name())
	fmt.Fprintf(c.sh.out, "Created %s\n", a)
	return subcommands.ExitSuccess
}
