package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/etnz/jnab"
	"github.com/etnz/jnab/renderer"
	"github.com/google/subcommands"
)

type lsCmd struct {
	sh   *Shell
	all  bool
	long bool
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list accounts" }
func (*lsCmd) Usage() string {
	return `ls [-a] [-l]

List the active accounts, the current one is marked with a '*'.
`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	boolVar(f, &c.all, "a", "all", "include deactivated accounts")
	boolVar(f, &c.long, "l", "long", "print a table of accounts")
}

func (c *lsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	accounts, err := c.sh.store.Accounts()
	if err != nil {
		return c.sh.failure(c.Name(), err)
	}
	listed := accounts[:0]
	for _, a := range accounts {
		if c.all || a.Active() {
			listed = append(listed, a)
		}
	}

	if c.long {
		c.sh.printMarkdown(renderer.AccountsMarkdown(listed, c.sh.current))
		return subcommands.ExitSuccess
	}

	if len(listed) == 0 {
		fmt.Fprintln(c.sh.out, "No accounts.")
		return subcommands.ExitSuccess
	}
	for _, a := range listed {
		mark := " "
		if c.sh.current != nil && a.ID() == c.sh.current.ID() {
			mark = "*"
		}
		suffix := ""
		if !a.Active() {
			suffix = " (inactive)"
		}
		fmt.Fprintf(c.sh.out, "%s %s%s\n", mark, a, suffix)
	}
	return subcommands.ExitSuccess
}

// lookup finds the account designated by args, by ID when it is made of
// digits only, by name otherwise.
func (sh *Shell) lookup(args []string) (*jnab.Account, error) {
	key := unquote(strings.Join(args, " "))
	if strings.IndexFunc(key, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
		return nil, fmt.Errorf("%w: %q", jnab.ErrAccountNotFound, key)
	}
	if key != "" && strings.IndexFunc(key, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: id %s", jnab.ErrAccountNotFound, key)
		}
		return sh.store.Account(id, "")
	}
	return sh.store.Account(0, key)
}
