package jnab

import (
	"errors"
	"flag"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	for _, c := range Currencies() {
		got, err := ParseCurrency(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCurrency(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCurrency("EUR"); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("ParseCurrency(EUR) error = %v, want ErrUnknownEnum", err)
	}
	if EURO.Code() != "EUR" || Currency(0).Code() != "" {
		t.Errorf("unexpected ISO codes %q %q", EURO.Code(), Currency(0).Code())
	}
}

func TestParseAccountType(t *testing.T) {
	for _, at := range AccountTypes() {
		got, err := ParseAccountType(at.String())
		if err != nil || got != at {
			t.Errorf("ParseAccountType(%q) = %v, %v", at.String(), got, err)
		}
	}
	if Cash.String() != "CASH" || AccountType(7).String() != "INVALID(7)" {
		t.Errorf("unexpected names %q %q", Cash, AccountType(7))
	}
}

func TestEnumFlagValues(t *testing.T) {
	var (
		cur Currency
		typ AccountType
	)
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Var(&cur, "c", "")
	f.Var(&typ, "t", "")
	if err := f.Parse([]string{"-c", "chf", "-t", "Credit"}); err != nil {
		t.Fatalf("Parse unexpected error: %v", err)
	}
	if cur != CHF || typ != Credit {
		t.Errorf("got %v %v, want CHF CREDIT", cur, typ)
	}

	f = flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetOutput(discard{})
	f.Var(&typ, "t", "")
	if err := f.Parse([]string{"-t", "bogus"}); err == nil {
		t.Error("Parse of an unknown type must fail")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, ok := ParseField(f.String())
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := ParseField("CURRENTY"); ok {
		t.Error("ParseField(CURRENTY) must fail")
	}
	for _, f := range Fields() {
		want := f == FieldID || f == FieldName || f == FieldType
		if f.Permanent() != want {
			t.Errorf("%v.Permanent() = %v, want %v", f, f.Permanent(), want)
		}
	}
}
