// Package renderer renders accounts and transactions as markdown documents.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/jnab"
	md "github.com/nao1215/markdown"
)

// AccountsMarkdown renders a table of accounts, marking the current one with a "*".
func AccountsMarkdown(accounts []*jnab.Account, current *jnab.Account) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Accounts")

	if len(accounts) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"", "ID", "Name", "Type", "Currency", "Balance", "Rate", "Active"},
		Rows:   [][]string{},
	}
	for _, a := range accounts {
		mark := ""
		if current != nil && a.ID() == current.ID() {
			mark = "*"
		}
		table.Rows = append(table.Rows, []string{
			mark,
			fmt.Sprint(a.ID()),
			a.Name(),
			a.Type().String(),
			a.Currency().String(),
			jnab.FormatAmount(a.Balance(), a.Currency()),
			a.RateTo().String(),
			yesNo(a.Active()),
		})
	}
	doc.Table(table)
	return doc.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
