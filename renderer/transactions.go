package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/jnab"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// TransactionsMarkdown renders the transactions of an account followed by its balance.
func TransactionsMarkdown(a *jnab.Account, txs []jnab.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(fmt.Sprintf("Transactions of %s", a.Name()))

	if len(txs) == 0 {
		doc.PlainText("No transactions.")
	} else {
		table := md.TableSet{
			Header: []string{"Date", "Name", "Amount", "Budget", "Transfer", "Cleared"},
			Rows:   [][]string{},
		}
		for _, tx := range txs {
			table.Rows = append(table.Rows, []string{
				tx.Date.String(),
				tx.Name,
				jnab.FormatAmount(decimal.NewFromInt(tx.Amount), a.Currency()),
				tx.BudgetID,
				yesNo(tx.Transfer),
				yesNo(tx.Clear),
			})
		}
		doc.Table(table)
	}
	doc.PlainText(fmt.Sprintf("Balance: %s", jnab.FormatAmount(a.Balance(), a.Currency())))
	return doc.String()
}
