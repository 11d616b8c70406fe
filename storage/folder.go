package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/jnab"
	"github.com/etnz/jnab/date"
)

const (
	accountsFilename     = "accounts.jsonl"
	transactionsFilename = "transactions.jsonl"
	lockFilename         = ".lock"
)

// Folder is a Store persisted as JSONL files in a directory.
//
// Accounts are kept in memory and the whole accounts file is rewritten on each
// change, first into a temporary file then renamed over the original so that
// an interrupted write never corrupts it. Transactions are appended.
type Folder struct {
	dir      string
	log      *slog.Logger
	accounts []*jnab.Account
	nextTxID int64
	closed   bool
}

// OpenFolder opens the folder store in dir.
func OpenFolder(dir string, create bool, logger *slog.Logger) (*Folder, error) {
	if _, err := os.Stat(dir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || !create {
			return nil, fmt.Errorf("cannot open storage %q: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create storage %q: %w", dir, err)
		}
		logger.Info("created storage folder", "dir", dir)
	}

	s := &Folder{dir: dir, log: logger}
	if err := s.lock(); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		s.unlock()
		return nil, err
	}
	logger.Info("opened storage folder", "dir", dir, "accounts", len(s.accounts))
	return s, nil
}

func (s *Folder) path(name string) string { return filepath.Join(s.dir, name) }

// lock creates the lock file exclusively.
func (s *Folder) lock() error {
	f, err := os.OpenFile(s.path(lockFilename), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: remove %q if no other session is running", ErrLocked, s.path(lockFilename))
	}
	if err != nil {
		return fmt.Errorf("cannot lock storage %q: %w", s.dir, err)
	}
	defer f.Close()
	_, err = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	return err
}

func (s *Folder) unlock() {
	if err := os.Remove(s.path(lockFilename)); err != nil {
		s.log.Warn("cannot remove lock file", "dir", s.dir, "error", err)
	}
}

// load reads all accounts, and scans the journal for the next transaction ID.
func (s *Folder) load() error {
	if f, err := os.Open(s.path(accountsFilename)); err == nil {
		s.accounts, err = jnab.DecodeAccounts(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("format error in %q: %w", s.path(accountsFilename), err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot open %q for reading: %w", s.path(accountsFilename), err)
	}

	txs, err := s.readTransactions()
	if err != nil {
		return err
	}
	for _, tx := range txs {
		s.nextTxID = max(s.nextTxID, tx.ID)
	}
	s.nextTxID++
	return nil
}

func (s *Folder) readTransactions() ([]jnab.Transaction, error) {
	f, err := os.Open(s.path(transactionsFilename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", s.path(transactionsFilename), err)
	}
	defer f.Close()
	txs, err := jnab.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", s.path(transactionsFilename), err)
	}
	return txs, nil
}

// save atomically rewrites the accounts file.
func (s *Folder) save() error {
	filename := s.path(accountsFilename)
	tmp := filename + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", tmp, err)
	}
	if err := jnab.EncodeAccounts(f, s.accounts); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, filename)
}

func (s *Folder) Accounts() ([]*jnab.Account, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return append([]*jnab.Account(nil), s.accounts...), nil
}

func (s *Folder) Account(id int64, name string) (*jnab.Account, error) {
	if s.closed {
		return nil, ErrClosed
	}
	for _, a := range s.accounts {
		if id > 0 && a.ID() == id {
			return a, nil
		}
		if id <= 0 && name != "" && a.Name() == strings.ToUpper(name) {
			return a, nil
		}
	}
	return nil, notFound(id, name)
}

func (s *Folder) AddAccount(a *jnab.Account) (*jnab.Account, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if err := checkNew(a); err != nil {
		return nil, err
	}
	var last int64
	for _, x := range s.accounts {
		if x.Name() == a.Name() {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, a.Name())
		}
		last = max(last, x.ID())
	}
	if err := a.SetField(jnab.FieldID, last+1); err != nil {
		return nil, err
	}
	s.accounts = append(s.accounts, a)
	if err := s.save(); err != nil {
		s.accounts = s.accounts[:len(s.accounts)-1]
		return nil, err
	}
	s.log.Debug("added account", "id", a.ID(), "name", a.Name())
	return a, nil
}

func (s *Folder) UpdateAccount(a *jnab.Account) error {
	if s.closed {
		return ErrClosed
	}
	for i, x := range s.accounts {
		if x.ID() == a.ID() {
			s.accounts[i] = a
			s.log.Debug("updated account", "id", a.ID())
			return s.save()
		}
	}
	return notFound(a.ID(), a.Name())
}

func (s *Folder) AddTransaction(a *jnab.Account, tx jnab.Transaction) (jnab.Transaction, error) {
	if s.closed {
		return jnab.Transaction{}, ErrClosed
	}
	stored, err := s.Account(a.ID(), "")
	if err != nil {
		return jnab.Transaction{}, err
	}
	tx.ID = s.nextTxID
	tx.AccountID = a.ID()
	if tx.Date.IsZero() {
		tx.Date = date.Today()
	}

	// accounts.jsonl is saved first: a journal entry is only written once the
	// balance it explains is on disk.
	previous := stored.Balance()
	if err := stored.Record(tx); err != nil {
		return jnab.Transaction{}, err
	}
	if err := s.save(); err != nil {
		_ = stored.SetField(jnab.FieldBalance, previous)
		return jnab.Transaction{}, err
	}
	if err := s.appendTransaction(tx); err != nil {
		_ = stored.SetField(jnab.FieldBalance, previous)
		if serr := s.save(); serr != nil {
			s.log.Error("cannot restore balance", "account", tx.AccountID, "error", serr)
		}
		return jnab.Transaction{}, err
	}
	s.nextTxID++

	if stored != a {
		if err := a.Record(tx); err != nil {
			return jnab.Transaction{}, err
		}
	}
	s.log.Debug("added transaction", "id", tx.ID, "account", tx.AccountID, "amount", tx.Amount)
	return tx, nil
}

func (s *Folder) appendTransaction(tx jnab.Transaction) error {
	filename := s.path(transactionsFilename)
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open %q for writing: %w", filename, err)
	}
	if err := jnab.EncodeTransaction(f, tx); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Folder) Transactions(accountID int64) ([]jnab.Transaction, error) {
	if s.closed {
		return nil, ErrClosed
	}
	txs, err := s.readTransactions()
	if err != nil {
		return nil, err
	}
	var res []jnab.Transaction
	for _, tx := range txs {
		if tx.AccountID == accountID {
			res = append(res, tx)
		}
	}
	return res, nil
}

func (s *Folder) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.unlock()
	s.log.Info("closed storage folder", "dir", s.dir)
	return nil
}
