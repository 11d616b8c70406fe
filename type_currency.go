package jnab

import "strings"

// Currency is the currency an account is held in.
type Currency int

const (
	USD  Currency = iota + 1 // US Dollar
	EURO                     // Euro
	CHF                      // Swiss Franc
	CNY                      // Chinese Yuan
	CAD                      // Canadian Dollar
)

var currencyNames = []string{"USD", "EURO", "CHF", "CNY", "CAD"}

// isoCodes maps currencies to their ISO 4217 code.
var isoCodes = map[Currency]string{USD: "USD", EURO: "EUR", CHF: "CHF", CNY: "CNY", CAD: "CAD"}

// Currencies returns all currencies in ordinal order.
func Currencies() []Currency { return []Currency{USD, EURO, CHF, CNY, CAD} }

// ParseCurrency returns the currency named s, case-insensitively.
func ParseCurrency(s string) (Currency, error) { return parseEnum[Currency](s, currencyNames) }

func (c Currency) String() string { return enumName(c, currencyNames) }

// Code returns the ISO 4217 code of the currency, or "" for an invalid one.
func (c Currency) Code() string { return isoCodes[c] }

// Valid reports whether c is one of the declared currencies.
func (c Currency) Valid() bool { return c >= USD && c <= CAD }

// Set implements flag.Value.
func (c *Currency) Set(s string) error {
	v, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// CurrencyNames returns the accepted currency names joined by sep.
func CurrencyNames(sep string) string { return strings.Join(currencyNames, sep) }
