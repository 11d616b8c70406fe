package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/jnab"
	"github.com/google/subcommands"
)

// activeCmd is either deactive or reactive.
type activeCmd struct {
	sh     *Shell
	active bool
}

func (c *activeCmd) Name() string {
	if c.active {
		return "reactive"
	}
	return "deactive"
}

func (c *activeCmd) Synopsis() string {
	if c.active {
		return "reactivate an account"
	}
	return "deactivate an account"
}

func (c *activeCmd) Usage() string {
	if c.active {
		return `reactive <id|name>

Reactivate a deactivated account, so that ls lists it again.
`
	}
	return `deactive <id|name>

Deactivate an account: ls no longer lists it. Its transactions are kept.
`
}

func (c *activeCmd) SetFlags(f *flag.FlagSet) {}

func (*activeCmd) positionalOnly() {}

func (c *activeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return c.sh.usageError(&UsageError{Command: c.Name(), Reason: "missing account ID or name"})
	}
	a, err := c.sh.lookup(f.Args())
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}
	if a.Active() == c.active {
		fmt.Fprintf(c.sh.out, "Nothing to do: %s\n", describeActive(a))
		return subcommands.ExitSuccess
	}
	if err := a.SetField(jnab.FieldActive, c.active); err != nil {
		return c.sh.failure(c.Name(), err)
	}
	if err := c.sh.store.UpdateAccount(a); err != nil {
		// the store may have handed out its own instance
		if rerr := a.SetField(jnab.FieldActive, !c.active); rerr != nil {
			c.sh.log.Error("cannot restore account activity", "id", a.ID(), "error", rerr)
		}
		return c.sh.failure(c.Name(), err)
	}
	c.sh.log.Info("account activity changed", "id", a.ID(), "active", c.active)
	fmt.Fprintln(c.sh.out, describeActive(a))

	if !c.active && c.sh.current != nil && c.sh.current.ID() == a.ID() {
		c.sh.current = nil
		fmt.Fprintln(c.sh.out, "The current account is no longer selected.")
	}
	return subcommands.ExitSuccess
}

func describeActive(a *jnab.Account) string {
	if a.Active() {
		return fmt.Sprintf("%s is active", a.Name())
	}
	return fmt.Sprintf("%s is inactive", a.Name())
}
