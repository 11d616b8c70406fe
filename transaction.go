package jnab

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/jnab/date"
)

// Attribute names of a transaction mapping.
const (
	TxDate     = "DATE"
	TxName     = "NAME"
	TxType     = "TYPE" // true for a transfer between accounts
	TxBudgetID = "BUDGET_ID"
	TxAmount   = "AMOUNT"
	TxClear    = "CLEAR"
)

// Transaction is a ledger entry of an account.
type Transaction struct {
	ID        int64 // assigned by storage
	AccountID int64 // assigned by storage
	Date      date.Date
	Name      string
	Transfer  bool
	BudgetID  string
	Amount    int64 // in major units of the account currency
	Clear     bool
}

// NewTransaction builds a transaction from a mapping of its attributes.
// A missing or empty DATE defaults to today.
func NewTransaction(fields map[string]any) (Transaction, error) {
	var tx Transaction
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		value := fields[key]
		var ok bool
		switch key {
		case TxDate:
			ok = true
			switch v := value.(type) {
			case nil:
			case date.Date:
				tx.Date = v
			case string:
				if v == "" {
					break
				}
				d, err := date.Parse(v)
				if err != nil {
					return Transaction{}, &InvalidAttributeError{Attribute: key, Reason: reasonValue, Err: err}
				}
				tx.Date = d
			default:
				ok = false
			}
		case TxName:
			tx.Name, ok = value.(string)
		case TxType:
			tx.Transfer, ok = value.(bool)
		case TxBudgetID:
			ok = true
			switch v := value.(type) {
			case nil:
			case string:
				tx.BudgetID = v
			default:
				ok = false
			}
		case TxAmount:
			tx.Amount, ok = toInt64(value)
		case TxClear:
			tx.Clear, ok = value.(bool)
		default:
			return Transaction{}, &InvalidAttributeError{Attribute: key, Reason: reasonUnknown}
		}
		if !ok {
			return Transaction{}, &InvalidAttributeError{Attribute: key, Reason: reasonValue, Err: fmt.Errorf("unexpected %T", value)}
		}
	}
	if tx.Date.IsZero() {
		tx.Date = date.Today()
	}
	return tx, nil
}

// ToMapping returns the attributes used to build the transaction.
func (tx Transaction) ToMapping() map[string]any {
	return map[string]any{
		TxDate:     tx.Date,
		TxName:     tx.Name,
		TxType:     tx.Transfer,
		TxBudgetID: tx.BudgetID,
		TxAmount:   tx.Amount,
		TxClear:    tx.Clear,
	}
}
