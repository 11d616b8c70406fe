package jnab

import (
	"fmt"
	"strings"
)

// parseEnum coerces raw into a value of the enumeration E. names[i] is the name
// of the ordinal i+1.
//
// raw may be an E, a Go integer holding a valid ordinal, or a name matched
// case-insensitively. errUnsupportedShape is returned for any other type.
func parseEnum[E ~int](raw any, names []string) (E, error) {
	var ordinal int64
	switch v := raw.(type) {
	case E:
		ordinal = int64(v)
	case int:
		ordinal = int64(v)
	case int32:
		ordinal = int64(v)
	case int64:
		ordinal = v
	case string:
		for i, name := range names {
			if strings.EqualFold(name, v) {
				return E(i + 1), nil
			}
		}
		return 0, fmt.Errorf("%w %q", ErrUnknownEnum, v)
	default:
		return 0, fmt.Errorf("%w %T", errUnsupportedShape, raw)
	}
	if ordinal < 1 || ordinal > int64(len(names)) {
		return 0, fmt.Errorf("%w %d", ErrUnknownEnum, ordinal)
	}
	return E(ordinal), nil
}

// enumName returns the name of the ordinal e, or a placeholder for invalid ones.
func enumName[E ~int](e E, names []string) string {
	if e < 1 || int(e) > len(names) {
		return fmt.Sprintf("INVALID(%d)", int(e))
	}
	return names[e-1]
}
