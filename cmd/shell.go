package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/etnz/jnab"
	"github.com/google/subcommands"
)

// Storage is the persistence the shell needs. storage.Store implements it.
type Storage interface {
	Accounts() ([]*jnab.Account, error)
	Account(id int64, name string) (*jnab.Account, error)
	AddAccount(a *jnab.Account) (*jnab.Account, error)
	UpdateAccount(a *jnab.Account) error
	AddTransaction(a *jnab.Account, tx jnab.Transaction) (jnab.Transaction, error)
	Transactions(accountID int64) ([]jnab.Transaction, error)
	Close() error
}

// UsageError reports malformed, missing or unknown arguments of a command line.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s (see help %s)", e.Command, e.Reason, e.Command)
}

// tokens are runs of characters other than blanks and commas, double quoted
// strings being part of the token, quotes included.
var tokenRegexp = regexp.MustCompile(`(?:[^\s,"]|"(?:\\.|[^"])*")+`)

func splitLine(line string) []string { return tokenRegexp.FindAllString(line, -1) }

// Shell is an interactive session over a Storage.
//
// It has at most one current account, the one `add` and `tx` operate on.
type Shell struct {
	store    Storage
	current  *jnab.Account
	out, err io.Writer
	log      *slog.Logger
	markdown func(string) string
	prompt   string

	cdr      *subcommands.Commander
	commands map[string]func() subcommands.Command
	done     bool
	closed   bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithOutput sets where the shell writes results and error messages.
func WithOutput(out, err io.Writer) Option {
	return func(sh *Shell) { sh.out, sh.err = out, err }
}

// WithLogger sets the logger of the shell.
func WithLogger(l *slog.Logger) Option { return func(sh *Shell) { sh.log = l } }

// WithMarkdown sets how markdown documents are turned into printable text.
func WithMarkdown(render func(string) string) Option {
	return func(sh *Shell) { sh.markdown = render }
}

// WithPrompt sets the prompt printed before reading each line.
func WithPrompt(p string) Option { return func(sh *Shell) { sh.prompt = p } }

// NewShell returns a session over store, with no current account.
func NewShell(store Storage, opts ...Option) *Shell {
	sh := &Shell{
		store:    store,
		out:      os.Stdout,
		err:      os.Stderr,
		log:      slog.New(slog.DiscardHandler),
		markdown: func(s string) string { return s },
		prompt:   "(jnab) ",
	}
	for _, opt := range opts {
		opt(sh)
	}
	sh.register()
	return sh
}

// register builds the command table. Commands are instantiated afresh for
// each line so that flag values never leak from one line to the next.
func (sh *Shell) register() {
	groups := []struct {
		name     string
		commands []func() subcommands.Command
	}{
		{"accounts", []func() subcommands.Command{
			func() subcommands.Command { return &lsCmd{sh: sh} },
			func() subcommands.Command { return &selCmd{sh: sh} },
			func() subcommands.Command { return &newCmd{sh: sh} },
			func() subcommands.Command { return &activeCmd{sh: sh, active: false} },
			func() subcommands.Command { return &activeCmd{sh: sh, active: true} },
		}},
		{"transactions", []func() subcommands.Command{
			func() subcommands.Command { return &addCmd{sh: sh} },
			func() subcommands.Command { return &txCmd{sh: sh} },
		}},
		{"", []func() subcommands.Command{
			func() subcommands.Command { return &topicCmd{sh: sh} },
			func() subcommands.Command { return &quitCmd{sh: sh, name: "quit"} },
			func() subcommands.Command { return &quitCmd{sh: sh, name: "exit"} },
			func() subcommands.Command { return &quitCmd{sh: sh, name: "EOF"} },
		}},
	}

	// The commander only serves the help command.
	sh.cdr = subcommands.NewCommander(flag.NewFlagSet("jnab", flag.ContinueOnError), "jnab")
	sh.cdr.Output, sh.cdr.Error = sh.out, sh.err
	sh.commands = make(map[string]func() subcommands.Command)
	for _, g := range groups {
		for _, newCommand := range g.commands {
			c := newCommand()
			sh.cdr.Register(c, g.name)
			sh.commands[c.Name()] = newCommand
		}
	}
	help := sh.cdr.HelpCommand()
	sh.cdr.Register(help, "")
	sh.commands[help.Name()] = func() subcommands.Command { return help }
}

// accountCommand is implemented by commands operating on the current account.
type accountCommand interface{ needsAccount() }

// positionalCommand is implemented by commands taking no flags: every token
// is an argument, even one starting with a dash.
type positionalCommand interface{ positionalOnly() }

// Current returns the current account, nil if none is selected.
func (sh *Shell) Current() *jnab.Account { return sh.current }

// maxLineLength bounds the length of an input line. Longer lines are rejected.
const maxLineLength = 64 * 1024

// Run reads and executes lines from r until a quit command or the end of
// input. The storage is closed on return in every case.
func (sh *Shell) Run(ctx context.Context, r io.Reader) error {
	defer sh.Close()
	sh.log.Info("session started")
	reader := bufio.NewReader(r)
	for {
		fmt.Fprint(sh.out, sh.prompt)
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if len(line) > maxLineLength {
				sh.usageError(&UsageError{Reason: fmt.Sprintf("line too long, %d bytes exceed %d", len(line), maxLineLength)})
			} else if sh.Exec(ctx, line) {
				return sh.Close()
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			sh.log.Error("cannot read input", "error", err)
			return err
		}
	}
	// end of input behaves like quit
	fmt.Fprintln(sh.out)
	sh.Exec(ctx, "EOF")
	return sh.Close()
}

// Exec executes a single command line, and reports whether the session must stop.
func (sh *Shell) Exec(ctx context.Context, line string) (stop bool) {
	args := splitLine(line)
	if len(args) == 0 {
		return false
	}
	name := args[0]
	newCommand, ok := sh.commands[name]
	if !ok {
		sh.usageError(&UsageError{Reason: fmt.Sprintf("unknown command %q, type help for the list of commands", name)})
		return false
	}
	c := newCommand()

	if _, ok := c.(accountCommand); ok && sh.current == nil {
		fmt.Fprintln(sh.out, "No account selected, use `sel <id|name>` first.")
		return false
	}

	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = func() {}
	c.SetFlags(f)
	rest := args[1:]
	if _, ok := c.(positionalCommand); ok {
		rest = append([]string{"--"}, rest...)
	}
	if err := f.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			sh.cdr.ExplainCommand(sh.out, c)
			return false
		}
		sh.usageError(&UsageError{Command: name, Reason: err.Error()})
		return false
	}

	sh.log.Debug("executing", "line", line)
	if status := c.Execute(ctx, f); status != subcommands.ExitSuccess {
		sh.log.Debug("command not successful", "command", name, "status", status)
	}
	return sh.done
}

// usageError logs and prints an argument parsing failure.
func (sh *Shell) usageError(err *UsageError) subcommands.ExitStatus {
	sh.log.Warn("argument parsing error", "command", err.Command, "error", err.Reason)
	fmt.Fprintln(sh.err, err)
	return subcommands.ExitUsageError
}

// failure logs and prints a failed command.
func (sh *Shell) failure(command string, err error) subcommands.ExitStatus {
	sh.log.Error("command failed", "command", command, "error", err)
	fmt.Fprintf(sh.err, "%s: %v\n", command, err)
	return subcommands.ExitFailure
}

// printMarkdown prints a markdown document to the shell output.
func (sh *Shell) printMarkdown(doc string) {
	fmt.Fprint(sh.out, sh.markdown(doc))
}

// Close closes the storage, once.
func (sh *Shell) Close() error {
	if sh.closed {
		return nil
	}
	sh.closed = true
	sh.log.Info("session closed")
	return sh.store.Close()
}
