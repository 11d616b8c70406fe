package cmd

import (
	"flag"
	"slices"
	"strings"

	"github.com/etnz/jnab/date"
)

// Every shell flag has a short and a long name, e.g. -n and -name. The flag
// package accepts --name as well.

func stringVar(f *flag.FlagSet, p *string, short, long, usage string) {
	f.StringVar(p, short, "", usage)
	f.StringVar(p, long, "", usage)
}

func boolVar(f *flag.FlagSet, p *bool, short, long, usage string) {
	f.BoolVar(p, short, false, usage)
	f.BoolVar(p, long, false, usage)
}

func int64Var(f *flag.FlagSet, p *int64, short, long, usage string) {
	f.Int64Var(p, short, 0, usage)
	f.Int64Var(p, long, 0, usage)
}

func valueVar(f *flag.FlagSet, v flag.Value, short, long, usage string) {
	f.Var(v, short, usage)
	f.Var(v, long, usage)
}

// isSet reports whether any of the named flags was given on the command line.
func isSet(f *flag.FlagSet, names ...string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if slices.Contains(names, fl.Name) {
			set = true
		}
	})
	return set
}

// unquote strips the double quotes kept around quoted tokens.
func unquote(s string) string { return strings.Trim(s, `"`) }

// dateValue is a flag.Value for a date.Date.
type dateValue struct{ d *date.Date }

func (v dateValue) String() string {
	if v.d == nil || v.d.IsZero() {
		return ""
	}
	return v.d.String()
}

func (v dateValue) Set(s string) error {
	d, err := date.Parse(unquote(s))
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}
