// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/fintrack/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// CurrencyStore persists the currency table.
type CurrencyStore interface {
	// CreateCurrency inserts a currency; ID and CreatedAt are populated if empty.
	CreateCurrency(ctx context.Context, c *models.Currency) error
	GetCurrency(ctx context.Context, id string) (*models.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*models.Currency, error)

	// GetBaseCurrency returns nil, nil when no base currency is configured.
	GetBaseCurrency(ctx context.Context) (*models.Currency, error)

	ListCurrencies(ctx context.Context) ([]models.Currency, error)
	UpdateCurrency(ctx context.Context, c *models.Currency) error
	DeleteCurrency(ctx context.Context, id string) error
}

// AccountFilter narrows ListAccounts. The zero value lists active accounts of any type.
type AccountFilter struct {
	Type            models.AccountType
	CurrencyID      string
	IncludeInactive bool

	// IncludeRemoved also counts soft-removed accounts. Only CountAccounts honours it.
	IncludeRemoved bool
}

// AccountStore persists accounts, regular and debt alike.
type AccountStore interface {
	CreateAccount(ctx context.Context, a *models.Account) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, error)
	UpdateAccount(ctx context.Context, a *models.Account) error

	// CountAccounts counts accounts matching filter.
	CountAccounts(ctx context.Context, filter AccountFilter) (int, error)

	// RemoveAccount soft-removes an account; removed accounts are no longer returned.
	RemoveAccount(ctx context.Context, id string) error
}

// TransactionFilter narrows ListTransactions. Empty fields do not filter.
type TransactionFilter struct {
	// AccountIDs matches transactions touching any of the accounts on either side.
	AccountIDs []string

	// ToAccountID matches the counter side only.
	ToAccountID string

	Types      []models.TransactionType
	CategoryID string
	Tag        string

	// From and To bound the date, inclusive. Zero values are open.
	From time.Time
	To   time.Time
}

// TransactionStore persists transactions and their tags.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// ListTransactions returns matches ordered by date, then creation.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)

	// DeleteTransaction removes a transaction and its tags.
	DeleteTransaction(ctx context.Context, id string) error

	// CountTransactions counts transactions matching filter.
	CountTransactions(ctx context.Context, filter TransactionFilter) (int, error)
}

// CategoryStore persists transaction categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// UserStore persists household users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines every storage operation of the ledger.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger layer.
type Store interface {
	CurrencyStore
	AccountStore
	TransactionStore
	CategoryStore
	UserStore

	// InTx runs fn inside a single all-or-nothing unit. The Store passed to fn
	// sees the unit's uncommitted writes. Any error from fn, or from the
	// commit, rolls everything back and is returned unmodified.
	InTx(ctx context.Context, fn func(Store) error) error

	// Close releases any resources held by the store.
	Close() error
}
