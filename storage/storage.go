// Package storage persists accounts and their transactions.
//
// Two backends are available, selected by the path given to Open:
//   - a sqlite database file, for paths ending in .db, .sqlite or .sqlite3;
//   - a folder of JSONL files, for any other path. The folder is human-readable
//     and git friendly: accounts.jsonl holds one account per line and
//     transactions.jsonl is an append-only journal.
//
// A Store is an exclusively owned handle: it must be closed at the end of the
// session, and a second handle on the same location cannot be opened meanwhile.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/etnz/jnab"
)

var (
	// ErrLocked is returned by Open when another handle owns the location.
	ErrLocked = errors.New("storage is locked by another session")
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("storage is closed")
	// ErrDuplicateName is returned by AddAccount when the name is already used.
	ErrDuplicateName = errors.New("account name already exists")
	// ErrIncomplete is returned by AddAccount for an account missing attributes.
	ErrIncomplete = errors.New("account is incomplete")
)

// Store is the persistence handle of a session.
type Store interface {
	// Accounts returns every account in creation order.
	Accounts() ([]*jnab.Account, error)
	// Account looks an account up by id when id > 0, by name otherwise.
	// It fails with jnab.ErrAccountNotFound.
	Account(id int64, name string) (*jnab.Account, error)
	// AddAccount assigns an ID to a complete account and persists it.
	AddAccount(a *jnab.Account) (*jnab.Account, error)
	// UpdateAccount persists the mutable attributes of an existing account.
	UpdateAccount(a *jnab.Account) error
	// AddTransaction assigns an ID to tx, persists it, and records it on a.
	AddTransaction(a *jnab.Account, tx jnab.Transaction) (jnab.Transaction, error)
	// Transactions returns the transactions of an account in recording order.
	Transactions(accountID int64) ([]jnab.Transaction, error)
	// Close releases the handle. Closing twice is a no-op.
	Close() error
}

// Open opens the store at path. If it does not exist it is created when
// create is true, otherwise an error wrapping fs.ErrNotExist is returned.
func Open(path string, create bool, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path, create, logger)
	default:
		return OpenFolder(path, create, logger)
	}
}

// checkNew verifies that a is ready to be added: every attribute but ID assigned.
func checkNew(a *jnab.Account) error {
	if a.Has(jnab.FieldID) {
		return fmt.Errorf("%w: account %q already has ID %d", ErrIncomplete, a.Name(), a.ID())
	}
	var missing []string
	for _, f := range jnab.Fields() {
		if f != jnab.FieldID && !a.Has(f) {
			missing = append(missing, f.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// notFound builds the lookup error for id or name.
func notFound(id int64, name string) error {
	if id > 0 {
		return fmt.Errorf("%w: id %d", jnab.ErrAccountNotFound, id)
	}
	return fmt.Errorf("%w: name %q", jnab.ErrAccountNotFound, name)
}
