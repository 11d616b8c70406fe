package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/etnz/jnab"
	"github.com/etnz/jnab/date"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// accountRow is the accounts table. Decimals are stored as text to keep them exact.
type accountRow struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"uniqueIndex;not null"`
	Type     int    `gorm:"not null"`
	Currency int    `gorm:"not null"`
	RateTo   string `gorm:"type:text;not null"`
	Balance  string `gorm:"type:text;not null"`
	Active   bool
}

func (accountRow) TableName() string { return "accounts" }

type transactionRow struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	AccountID int64 `gorm:"index;not null"`
	Date      string
	Name      string
	Transfer  bool
	BudgetID  string
	Amount    int64
	Clear     bool
}

func (transactionRow) TableName() string { return "transactions" }

func (r accountRow) account() (*jnab.Account, error) {
	return jnab.Create(map[string]any{
		"ID":       r.ID,
		"NAME":     r.Name,
		"TYPE":     r.Type,
		"CURRENCY": r.Currency,
		"RATE_TO":  r.RateTo,
		"BALANCE":  r.Balance,
		"ACTIVE":   r.Active,
	})
}

func (r transactionRow) transaction() (jnab.Transaction, error) {
	on, err := date.Parse(r.Date)
	if err != nil {
		return jnab.Transaction{}, fmt.Errorf("transaction %d: %w", r.ID, err)
	}
	return jnab.Transaction{
		ID:        r.ID,
		AccountID: r.AccountID,
		Date:      on,
		Name:      r.Name,
		Transfer:  r.Transfer,
		BudgetID:  r.BudgetID,
		Amount:    r.Amount,
		Clear:     r.Clear,
	}, nil
}

// SQLite is a Store backed by a sqlite database file.
type SQLite struct {
	path   string
	db     *gorm.DB
	log    *slog.Logger
	closed bool
}

// OpenSQLite opens the sqlite database at path and migrates its schema.
func OpenSQLite(path string, create bool, log *slog.Logger) (*SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || !create {
			return nil, fmt.Errorf("cannot open storage %q: %w", path, err)
		}
		log.Info("creating storage database", "path", path)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open storage %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection holding an exclusive lock: no other session can use the file.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA locking_mode = EXCLUSIVE").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("cannot lock storage %q: %w", path, err)
	}
	if err := db.AutoMigrate(&accountRow{}, &transactionRow{}); err != nil {
		sqlDB.Close()
		if strings.Contains(err.Error(), "locked") {
			return nil, fmt.Errorf("%w: %v", ErrLocked, err)
		}
		return nil, fmt.Errorf("cannot migrate storage %q: %w", path, err)
	}
	log.Info("opened storage database", "path", path)
	return &SQLite{path: path, db: db, log: log}, nil
}

func (s *SQLite) Accounts() ([]*jnab.Account, error) {
	if s.closed {
		return nil, ErrClosed
	}
	var rows []accountRow
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]*jnab.Account, 0, len(rows))
	for _, r := range rows {
		a, err := r.account()
		if err != nil {
			return nil, fmt.Errorf("invalid account %d in %q: %w", r.ID, s.path, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *SQLite) Account(id int64, name string) (*jnab.Account, error) {
	if s.closed {
		return nil, ErrClosed
	}
	q := s.db
	switch {
	case id > 0:
		q = q.Where("id = ?", id)
	case name != "":
		q = q.Where("name = ?", strings.ToUpper(name))
	default:
		return nil, notFound(id, name)
	}
	var rows []accountRow
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound(id, name)
	}
	return rows[0].account()
}

func (s *SQLite) AddAccount(a *jnab.Account) (*jnab.Account, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if err := checkNew(a); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&accountRow{}).Where("name = ?", a.Name()).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, a.Name())
	}
	row := accountRow{
		Name:     a.Name(),
		Type:     int(a.Type()),
		Currency: int(a.Currency()),
		RateTo:   a.RateTo().String(),
		Balance:  a.Balance().String(),
		Active:   a.Active(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("cannot insert account %q: %w", a.Name(), err)
	}
	if err := a.SetField(jnab.FieldID, row.ID); err != nil {
		return nil, err
	}
	s.log.Debug("added account", "id", a.ID(), "name", a.Name())
	return a, nil
}

// mutable returns the columns of the attributes that may change after creation.
func mutable(a *jnab.Account, balance decimal.Decimal) map[string]any {
	return map[string]any{
		"currency": int(a.Currency()),
		"rate_to":  a.RateTo().String(),
		"balance":  balance.String(),
		"active":   a.Active(),
	}
}

func (s *SQLite) UpdateAccount(a *jnab.Account) error {
	if s.closed {
		return ErrClosed
	}
	res := s.db.Model(&accountRow{}).Where("id = ?", a.ID()).Updates(mutable(a, a.Balance()))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(a.ID(), a.Name())
	}
	s.log.Debug("updated account", "id", a.ID())
	return nil
}

func (s *SQLite) AddTransaction(a *jnab.Account, tx jnab.Transaction) (jnab.Transaction, error) {
	if s.closed {
		return jnab.Transaction{}, ErrClosed
	}
	if tx.Date.IsZero() {
		tx.Date = date.Today()
	}
	row := transactionRow{
		AccountID: a.ID(),
		Date:      tx.Date.String(),
		Name:      tx.Name,
		Transfer:  tx.Transfer,
		BudgetID:  tx.BudgetID,
		Amount:    tx.Amount,
		Clear:     tx.Clear,
	}
	balance := a.Balance().Add(decimal.NewFromInt(tx.Amount))
	err := s.db.Transaction(func(db *gorm.DB) error {
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		res := db.Model(&accountRow{}).Where("id = ?", a.ID()).Updates(mutable(a, balance))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(a.ID(), a.Name())
		}
		return nil
	})
	if err != nil {
		return jnab.Transaction{}, fmt.Errorf("cannot record transaction %q: %w", tx.Name, err)
	}
	tx.ID, tx.AccountID = row.ID, row.AccountID
	s.log.Debug("added transaction", "id", tx.ID, "account", tx.AccountID, "amount", tx.Amount)
	return tx, a.Record(tx)
}

func (s *SQLite) Transactions(accountID int64) ([]jnab.Transaction, error) {
	if s.closed {
		return nil, ErrClosed
	}
	var rows []transactionRow
	if err := s.db.Where("account_id = ?", accountID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]jnab.Transaction, 0, len(rows))
	for _, r := range rows {
		tx, err := r.transaction()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (s *SQLite) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.log.Info("closed storage database", "path", s.path)
	return sqlDB.Close()
}
