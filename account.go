package jnab

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a financial account of the ledger.
//
// An Account is built in two phases: declare an empty value (NewAccount or the
// zero value), then assign its attributes one at a time through Set. ID, NAME
// and TYPE can be assigned exactly once.
type Account struct {
	id       int64
	name     string
	typ      AccountType
	currency Currency
	rateTo   decimal.Decimal
	balance  decimal.Decimal
	active   bool

	assigned uint8 // bit set of assigned fields
}

// NewAccount returns an account with no attribute assigned.
func NewAccount() *Account { return &Account{} }

// Create builds an account from a mapping of attribute names to raw values.
//
// Every key must be a known attribute. Values are applied in canonical field
// order and the account is returned only if all of them were accepted.
func Create(fields map[string]any) (*Account, error) {
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		if _, ok := ParseField(name); !ok {
			return nil, &InvalidAttributeError{Attribute: name, Reason: reasonUnknown}
		}
	}
	var a Account
	for _, f := range Fields() {
		v, ok := fields[f.String()]
		if !ok {
			continue
		}
		if err := a.SetField(f, v); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

// Set assigns the attribute called name. It is the sole write path of an Account.
func (a *Account) Set(name string, value any) error {
	f, ok := ParseField(name)
	if !ok {
		return &InvalidAttributeError{Attribute: name, Reason: reasonUnknown}
	}
	return a.SetField(f, value)
}

// SetField assigns the attribute f.
//
// TYPE and CURRENCY accept an ordinal or a case-insensitive name. NAME is
// stored upper-cased. A CURRENCY value of any other Go type is a programming
// error and panics.
func (a *Account) SetField(f Field, value any) error {
	if f.Permanent() && a.Has(f) {
		return &InvalidAttributeError{Attribute: f.String(), Reason: reasonPermanent}
	}
	switch f {
	case FieldID:
		id, ok := toInt64(value)
		if !ok {
			return invalidValue(f, value, nil)
		}
		a.id = id
	case FieldName:
		s, ok := value.(string)
		if !ok {
			return invalidValue(f, value, nil)
		}
		a.name = strings.ToUpper(s)
	case FieldType:
		t, err := parseEnum[AccountType](value, accountTypeNames)
		if err != nil {
			return invalidValue(f, value, err)
		}
		a.typ = t
	case FieldCurrency:
		c, err := parseEnum[Currency](value, currencyNames)
		if errors.Is(err, errUnsupportedShape) {
			panic(fmt.Sprintf("jnab: CURRENCY must be set from an int or a string, got %T", value))
		}
		if err != nil {
			return invalidValue(f, value, err)
		}
		a.currency = c
	case FieldRateTo, FieldBalance:
		d, err := toDecimal(value)
		if err != nil {
			return invalidValue(f, value, err)
		}
		if f == FieldRateTo {
			a.rateTo = d
		} else {
			a.balance = d
		}
	case FieldActive:
		b, ok := value.(bool)
		if !ok {
			return invalidValue(f, value, nil)
		}
		a.active = b
	default:
		return &InvalidAttributeError{Attribute: f.String(), Reason: reasonUnknown}
	}
	a.assigned |= f.bit()
	return nil
}

func invalidValue(f Field, value any, err error) error {
	if err == nil {
		err = fmt.Errorf("unexpected %T", value)
	}
	return &InvalidAttributeError{Attribute: f.String(), Reason: reasonValue, Err: err}
}

// Has reports whether the attribute f has been assigned.
func (a *Account) Has(f Field) bool { return a.assigned&f.bit() != 0 }

func (a *Account) ID() int64                { return a.id }
func (a *Account) Name() string             { return a.name }
func (a *Account) Type() AccountType        { return a.typ }
func (a *Account) Currency() Currency       { return a.currency }
func (a *Account) RateTo() decimal.Decimal  { return a.rateTo }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Active() bool             { return a.active }

// CheckSanity reports whether every attribute has been assigned.
// Values themselves are not checked.
func (a *Account) CheckSanity() bool {
	for _, f := range Fields() {
		if !a.Has(f) {
			return false
		}
	}
	return true
}

// ToMapping returns all attributes keyed by name, TYPE and CURRENCY as their ordinal.
func (a *Account) ToMapping() map[string]any {
	return map[string]any{
		FieldID.String():       a.id,
		FieldName.String():     a.name,
		FieldType.String():     int(a.typ),
		FieldCurrency.String(): int(a.currency),
		FieldRateTo.String():   a.rateTo,
		FieldBalance.String():  a.balance,
		FieldActive.String():   a.active,
	}
}

// String returns a one-line summary of the account.
func (a *Account) String() string {
	return fmt.Sprintf("%d - %s: %s; %s, %s, RATE(%s)",
		a.id, a.name, FormatAmount(a.balance, a.currency), a.currency, a.typ, a.rateTo)
}

// Record applies the transaction amount to the account balance.
func (a *Account) Record(tx Transaction) error {
	return a.SetField(FieldBalance, a.balance.Add(decimal.NewFromInt(tx.Amount)))
}
