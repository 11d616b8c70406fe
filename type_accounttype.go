package jnab

import "strings"

// AccountType is the kind of an account.
type AccountType int

const (
	Checking AccountType = iota + 1
	Credit
	Cash
)

var accountTypeNames = []string{"CHECKING", "CREDIT", "CASH"}

// AccountTypes returns all account types in ordinal order.
func AccountTypes() []AccountType { return []AccountType{Checking, Credit, Cash} }

// ParseAccountType returns the account type named s, case-insensitively.
func ParseAccountType(s string) (AccountType, error) {
	return parseEnum[AccountType](s, accountTypeNames)
}

func (t AccountType) String() string { return enumName(t, accountTypeNames) }

// Valid reports whether t is one of the declared account types.
func (t AccountType) Valid() bool { return t >= Checking && t <= Cash }

// Set implements flag.Value.
func (t *AccountType) Set(s string) error {
	v, err := ParseAccountType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// AccountTypeNames returns the accepted account type names joined by sep.
func AccountTypeNames(sep string) string { return strings.Join(accountTypeNames, sep) }
