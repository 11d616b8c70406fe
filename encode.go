package jnab

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/jnab/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// accountRecord is the persisted shape of an Account.
type accountRecord struct {
	ID       int64           `json:"ID"`
	Name     string          `json:"NAME"`
	Type     int             `json:"TYPE"`
	Currency int             `json:"CURRENCY"`
	RateTo   decimal.Decimal `json:"RATE_TO"`
	Balance  decimal.Decimal `json:"BALANCE"`
	Active   bool            `json:"ACTIVE"`
}

// MarshalJSON writes the account record with attributes in canonical order.
func (a *Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ID", a.id)
	w.Append("NAME", a.name)
	w.Append("TYPE", int(a.typ))
	w.Append("CURRENCY", int(a.currency))
	w.Append("RATE_TO", a.rateTo)
	w.Append("BALANCE", a.balance)
	w.Append("ACTIVE", a.active)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an account record, applying the same rules as Create.
func (a *Account) UnmarshalJSON(data []byte) error {
	var r accountRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	created, err := Create(map[string]any{
		"ID":       r.ID,
		"NAME":     r.Name,
		"TYPE":     r.Type,
		"CURRENCY": r.Currency,
		"RATE_TO":  r.RateTo,
		"BALANCE":  r.Balance,
		"ACTIVE":   r.Active,
	})
	if err != nil {
		return err
	}
	*a = *created
	return nil
}

// transactionRecord is the persisted shape of a Transaction.
type transactionRecord struct {
	ID        int64     `json:"ID"`
	AccountID int64     `json:"ACCOUNT_ID"`
	Date      date.Date `json:"DATE"`
	Name      string    `json:"NAME"`
	Type      bool      `json:"TYPE"`
	BudgetID  string    `json:"BUDGET_ID,omitempty"`
	Amount    int64     `json:"AMOUNT"`
	Clear     bool      `json:"CLEAR"`
}

func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ID", tx.ID)
	w.Append("ACCOUNT_ID", tx.AccountID)
	w.Append(TxDate, tx.Date)
	w.Append(TxName, tx.Name)
	w.Append(TxType, tx.Transfer)
	w.Optional(TxBudgetID, tx.BudgetID)
	w.Append(TxAmount, tx.Amount)
	w.Append(TxClear, tx.Clear)
	return w.MarshalJSON()
}

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var r transactionRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*tx = Transaction{
		ID:        r.ID,
		AccountID: r.AccountID,
		Date:      r.Date,
		Name:      r.Name,
		Transfer:  r.Type,
		BudgetID:  r.BudgetID,
		Amount:    r.Amount,
		Clear:     r.Clear,
	}
	return nil
}

// EncodeAccounts writes accounts to w in JSONL format, one record per line.
func EncodeAccounts(w io.Writer, accounts []*Account) error {
	for _, a := range accounts {
		b, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to marshal account %d: %w", a.ID(), err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("failed to write account: %w", err)
		}
	}
	return nil
}

// DecodeAccounts reads accounts from a stream of JSONL data. Empty lines are skipped.
func DecodeAccounts(r io.Reader) ([]*Account, error) {
	var accounts []*Account
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		a := NewAccount()
		if err := json.Unmarshal(line, a); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", i, err)
		}
		accounts = append(accounts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return accounts, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// DecodeTransactions reads transactions from a stream of JSONL data.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return txs, nil
}
