package jnab

// Field identifies one of the fixed attributes of an Account.
type Field int

const (
	FieldID Field = iota + 1
	FieldName
	FieldType
	FieldCurrency
	FieldRateTo
	FieldBalance
	FieldActive
)

var fieldNames = []string{"ID", "NAME", "TYPE", "CURRENCY", "RATE_TO", "BALANCE", "ACTIVE"}

// Fields returns every account attribute in canonical order.
func Fields() []Field {
	return []Field{FieldID, FieldName, FieldType, FieldCurrency, FieldRateTo, FieldBalance, FieldActive}
}

// ParseField returns the attribute called name. Attribute names are exact and upper case.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i + 1), true
		}
	}
	return 0, false
}

func (f Field) String() string { return enumName(f, fieldNames) }

// Permanent reports whether the attribute is locked after its first assignment.
//
// CURRENCY is not permanent: accounts may be re-denominated.
func (f Field) Permanent() bool { return f == FieldID || f == FieldName || f == FieldType }

func (f Field) bit() uint8 { return 1 << uint(f) }
