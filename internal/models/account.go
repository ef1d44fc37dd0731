package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType discriminates regular accounts from debt accounts.
type AccountType string

const (
	AccountRegular AccountType = "regular"
	AccountDebt    AccountType = "debt"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountRegular || t == AccountDebt
}

// DebtType says who owes whom.
type DebtType string

const (
	// DebtIOwe is money the household owes to a counterparty.
	DebtIOwe DebtType = "i_owe"
	// DebtOwedToMe is money a counterparty owes to the household.
	DebtOwedToMe DebtType = "owed_to_me"
)

// Valid reports whether t is a known debt type.
func (t DebtType) Valid() bool {
	return t == DebtIOwe || t == DebtOwedToMe
}

// Account is a named store of value denominated in one currency.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string

	Name string

	Type AccountType

	// CurrencyID references the Currency the account is denominated in.
	CurrencyID string

	// InitialBalance is the value at creation, before any transaction.
	InitialBalance decimal.Decimal

	IsActive bool

	// Debt holds the debt-only fields. It is nil for regular accounts.
	Debt *DebtDetails

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// DebtDetails are the fields that only exist on debt accounts.
type DebtDetails struct {
	DebtType DebtType

	// TargetAmount is the principal, in the account's currency.
	TargetAmount decimal.Decimal

	DueDate *time.Time

	Counterparty string

	// IsPaidOff is maintained by the debt tracker only.
	IsPaidOff bool
}

// IsDebt reports whether the account is a debt account.
func (a *Account) IsDebt() bool {
	return a.Type == AccountDebt && a.Debt != nil
}
