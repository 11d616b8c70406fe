package jnab

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAttribute is matched by every *InvalidAttributeError.
	ErrInvalidAttribute = errors.New("invalid account attribute")

	// ErrAccountNotFound is returned by storage lookups that match no account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnknownEnum reports an ordinal or a name that is not part of an enumeration.
	ErrUnknownEnum = errors.New("unknown enumeration value")

	// errUnsupportedShape reports a raw enumeration value that is neither an integer nor a string.
	errUnsupportedShape = errors.New("unsupported enumeration value type")
)

// InvalidAttributeError reports a rejected write to an account or transaction attribute.
type InvalidAttributeError struct {
	Attribute string
	Reason    string
	Err       error // optional cause
}

func (e *InvalidAttributeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Reason, e.Attribute, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Reason, e.Attribute)
}

// Is makes every InvalidAttributeError match ErrInvalidAttribute.
func (e *InvalidAttributeError) Is(target error) bool { return target == ErrInvalidAttribute }

func (e *InvalidAttributeError) Unwrap() error { return e.Err }

const (
	reasonUnknown   = "invalid attribute"
	reasonPermanent = "cannot change permanent attribute"
	reasonValue     = "invalid value for attribute"
)
