package jnab

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func checkingFields() map[string]any {
	return map[string]any{
		"ID":       int64(7),
		"NAME":     "checking acct",
		"TYPE":     "checking",
		"CURRENCY": "usd",
		"RATE_TO":  1,
		"BALANCE":  0,
		"ACTIVE":   true,
	}
}

func TestCreate(t *testing.T) {
	a, err := Create(checkingFields())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if a.ID() != 7 {
		t.Errorf("ID = %d, want 7", a.ID())
	}
	if a.Name() != "CHECKING ACCT" {
		t.Errorf("NAME = %q, want %q", a.Name(), "CHECKING ACCT")
	}
	if a.Type() != Checking {
		t.Errorf("TYPE = %v, want CHECKING", a.Type())
	}
	if a.Currency() != USD {
		t.Errorf("CURRENCY = %v, want USD", a.Currency())
	}
	if !a.RateTo().Equal(decimal.NewFromInt(1)) || !a.Balance().IsZero() || !a.Active() {
		t.Errorf("unexpected mutable fields: %v", a)
	}
	if !a.CheckSanity() {
		t.Error("CheckSanity() = false for a fully assigned account")
	}
}

func TestCreateRejectsUnknownAttribute(t *testing.T) {
	fields := checkingFields()
	fields["COLOR"] = "blue"
	a, err := Create(fields)
	if !errors.Is(err, ErrInvalidAttribute) {
		t.Fatalf("Create() error = %v, want ErrInvalidAttribute", err)
	}
	if a != nil {
		t.Errorf("Create() leaked a partial account: %v", a)
	}
}

func TestCreateFailsOnInvalidEnumName(t *testing.T) {
	for _, field := range []string{"TYPE", "CURRENCY"} {
		t.Run(field, func(t *testing.T) {
			fields := checkingFields()
			fields[field] = "bogus"
			a, err := Create(fields)
			if !errors.Is(err, ErrInvalidAttribute) || !errors.Is(err, ErrUnknownEnum) {
				t.Fatalf("Create() error = %v, want ErrInvalidAttribute wrapping ErrUnknownEnum", err)
			}
			if a != nil {
				t.Errorf("Create() leaked a partial account: %v", a)
			}
		})
	}
}

func TestSetUnknownAttribute(t *testing.T) {
	a := NewAccount()
	for _, name := range []string{"COLOR", "name", "", "RATE"} {
		err := a.Set(name, "x")
		var ia *InvalidAttributeError
		if !errors.As(err, &ia) || ia.Reason != reasonUnknown {
			t.Errorf("Set(%q) error = %v, want an invalid attribute error", name, err)
		}
	}
}

func TestPermanentAttributes(t *testing.T) {
	testCases := []struct {
		field  string
		first  any
		second any
	}{
		{field: "ID", first: 1, second: 2},
		{field: "NAME", first: "cash", second: "wallet"},
		{field: "TYPE", first: "cash", second: "credit"},
	}
	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			a := NewAccount()
			if err := a.Set(tc.field, tc.first); err != nil {
				t.Fatalf("first Set() unexpected error: %v", err)
			}
			before := a.ToMapping()[tc.field]
			err := a.Set(tc.field, tc.second)
			var ia *InvalidAttributeError
			if !errors.As(err, &ia) || ia.Reason != reasonPermanent {
				t.Fatalf("second Set() error = %v, want a permanent attribute error", err)
			}
			if after := a.ToMapping()[tc.field]; after != before {
				t.Errorf("value changed from %v to %v despite the error", before, after)
			}
		})
	}
}

// CURRENCY is listed alongside the identity attributes but stays writable.
func TestCurrencyIsNotPermanent(t *testing.T) {
	a := NewAccount()
	if err := a.Set("CURRENCY", "usd"); err != nil {
		t.Fatalf("Set(CURRENCY) unexpected error: %v", err)
	}
	if err := a.Set("CURRENCY", "chf"); err != nil {
		t.Fatalf("second Set(CURRENCY) unexpected error: %v", err)
	}
	if a.Currency() != CHF {
		t.Errorf("CURRENCY = %v, want CHF", a.Currency())
	}
}

func TestMutableAttributes(t *testing.T) {
	a := NewAccount()
	for _, v := range []any{10, "12.5", 13.25, decimal.RequireFromString("14")} {
		if err := a.Set("BALANCE", v); err != nil {
			t.Fatalf("Set(BALANCE, %v) unexpected error: %v", v, err)
		}
	}
	if want := decimal.RequireFromString("14"); !a.Balance().Equal(want) {
		t.Errorf("BALANCE = %v, want %v", a.Balance(), want)
	}
	if err := a.Set("ACTIVE", true); err != nil {
		t.Fatal(err)
	}
	if err := a.Set("ACTIVE", false); err != nil {
		t.Fatal(err)
	}
	if a.Active() {
		t.Error("ACTIVE = true, want false")
	}
}

func TestEnumCoercion(t *testing.T) {
	testCases := []struct {
		raw      any
		wantType AccountType
		wantCur  Currency
	}{
		{raw: 1, wantType: Checking, wantCur: USD},
		{raw: int64(2), wantType: Credit, wantCur: EURO},
		{raw: "CASH", wantType: Cash},
		{raw: "cAsH", wantType: Cash},
		{raw: "euro", wantCur: EURO},
		{raw: "Cad", wantCur: CAD},
		{raw: Cash, wantType: Cash},
		{raw: CNY, wantCur: CNY},
	}
	for _, tc := range testCases {
		if tc.wantType != 0 {
			a := NewAccount()
			if err := a.Set("TYPE", tc.raw); err != nil {
				t.Errorf("Set(TYPE, %v) unexpected error: %v", tc.raw, err)
			} else if a.Type() != tc.wantType {
				t.Errorf("Set(TYPE, %v) = %v, want %v", tc.raw, a.Type(), tc.wantType)
			}
		}
		if tc.wantCur != 0 {
			a := NewAccount()
			if err := a.Set("CURRENCY", tc.raw); err != nil {
				t.Errorf("Set(CURRENCY, %v) unexpected error: %v", tc.raw, err)
			} else if a.Currency() != tc.wantCur {
				t.Errorf("Set(CURRENCY, %v) = %v, want %v", tc.raw, a.Currency(), tc.wantCur)
			}
		}
	}
}

func TestEnumOutOfRange(t *testing.T) {
	a := NewAccount()
	for _, raw := range []any{0, 4, -1} {
		if err := a.Set("TYPE", raw); !errors.Is(err, ErrUnknownEnum) {
			t.Errorf("Set(TYPE, %v) error = %v, want ErrUnknownEnum", raw, err)
		}
	}
	if err := a.Set("CURRENCY", 6); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("Set(CURRENCY, 6) error = %v, want ErrUnknownEnum", err)
	}
	if a.Has(FieldType) || a.Has(FieldCurrency) {
		t.Error("a rejected value must not mark the attribute as assigned")
	}
}

func TestTypeUnsupportedShapeIsRecoverable(t *testing.T) {
	a := NewAccount()
	if err := a.Set("TYPE", 1.5); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("Set(TYPE, 1.5) error = %v, want ErrInvalidAttribute", err)
	}
}

func TestCurrencyUnsupportedShapePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set(CURRENCY, 1.5) did not panic")
		}
	}()
	a := NewAccount()
	_ = a.Set("CURRENCY", 1.5)
}

func TestCheckSanity(t *testing.T) {
	a := NewAccount()
	for _, f := range Fields() {
		if a.CheckSanity() {
			t.Fatalf("CheckSanity() = true before %v was assigned", f)
		}
		if err := a.SetField(f, checkingFields()[f.String()]); err != nil {
			t.Fatalf("SetField(%v) unexpected error: %v", f, err)
		}
	}
	if !a.CheckSanity() {
		t.Error("CheckSanity() = false for a fully assigned account")
	}
}

func TestToMappingRoundTrip(t *testing.T) {
	fields := checkingFields()
	fields["TYPE"] = 3
	fields["CURRENCY"] = 4
	a, err := Create(fields)
	if err != nil {
		t.Fatal(err)
	}
	m := a.ToMapping()
	if m["TYPE"] != 3 || m["CURRENCY"] != 4 {
		t.Errorf("ToMapping() TYPE=%v CURRENCY=%v, want 3 and 4", m["TYPE"], m["CURRENCY"])
	}
	b, err := Create(m)
	if err != nil {
		t.Fatalf("Create(ToMapping()) unexpected error: %v", err)
	}
	if b.String() != a.String() {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", b, a)
	}
}

func TestString(t *testing.T) {
	a, err := Create(map[string]any{
		"ID": 1, "NAME": "Checking", "TYPE": "checking", "CURRENCY": "usd",
		"RATE_TO": 1, "BALANCE": "12.5", "ACTIVE": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "1 - CHECKING: $12.50; USD, CHECKING, RATE(1)"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRecord(t *testing.T) {
	a, err := Create(checkingFields())
	if err != nil {
		t.Fatal(err)
	}
	for _, amount := range []int64{100, -30} {
		if err := a.Record(Transaction{Amount: amount}); err != nil {
			t.Fatalf("Record(%d) unexpected error: %v", amount, err)
		}
	}
	if !a.Balance().Equal(decimal.NewFromInt(70)) {
		t.Errorf("BALANCE = %v, want 70", a.Balance())
	}
}

func TestAccountJSON(t *testing.T) {
	a, err := Create(checkingFields())
	if err != nil {
		t.Fatal(err)
	}
	got, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"ID":7,"NAME":"CHECKING ACCT","TYPE":1,"CURRENCY":1,"RATE_TO":1,"BALANCE":0,"ACTIVE":true}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	back := NewAccount()
	if err := json.Unmarshal(got, back); err != nil {
		t.Fatalf("Unmarshal unexpected error: %v", err)
	}
	if back.String() != a.String() || !back.CheckSanity() {
		t.Errorf("Unmarshal = %v, want %v", back, a)
	}

	if err := json.Unmarshal([]byte(`{"ID":1,"NAME":"X","TYPE":9,"CURRENCY":1}`), NewAccount()); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("Unmarshal of an invalid TYPE error = %v, want ErrUnknownEnum", err)
	}
}
