package jnab

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// toDecimal is a convenient factory for decimal.Decimal from loosely typed values.
func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("cannot convert %T to a decimal", value)
	}
}

// toInt64 accepts any Go integer type.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

// FormatAmount renders value in the given currency with its symbol, e.g. "$12.50".
func FormatAmount(value decimal.Decimal, c Currency) string {
	if !c.Valid() {
		return value.StringFixed(2)
	}
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, c.Code()).Currency()
	minor := value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
