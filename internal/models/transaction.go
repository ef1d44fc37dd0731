package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is one of the five ledger event kinds.
type TransactionType string

const (
	TxIncome         TransactionType = "income"
	TxExpense        TransactionType = "expense"
	TxTransfer       TransactionType = "transfer"
	TxDebtPayment    TransactionType = "debt_payment"
	TxDebtCollection TransactionType = "debt_collection"
)

// TransactionTypes lists every transaction kind.
var TransactionTypes = []TransactionType{TxIncome, TxExpense, TxTransfer, TxDebtPayment, TxDebtCollection}

// Valid reports whether t is a known transaction kind.
func (t TransactionType) Valid() bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer, TxDebtPayment, TxDebtCollection:
		return true
	}
	return false
}

// IsDebtKind reports whether t settles a debt.
func (t TransactionType) IsDebtKind() bool {
	return t == TxDebtPayment || t == TxDebtCollection
}

// HasCounterAccount reports whether transactions of kind t carry a ToAccountID.
func (t TransactionType) HasCounterAccount() bool {
	return t == TxTransfer || t.IsDebtKind()
}

// Transaction is a posted ledger event touching one or two accounts.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	Type TransactionType

	// AccountID is the primary ("from") side.
	AccountID string

	// Amount is always >= 0 and denominated in AccountID's currency.
	Amount decimal.Decimal

	// ToAccountID and ToAmount are set for transfer and debt kinds only.
	// ToAmount is denominated in ToAccountID's currency.
	ToAccountID string
	ToAmount    *decimal.Decimal

	// ExchangeRate is ToAmount/Amount rounded to 6 places, kept for display only.
	ExchangeRate *decimal.Decimal

	// CategoryID is empty for transfer and debt kinds.
	CategoryID string

	Date time.Time

	Description string

	Tags []string

	// CreatedAt is the Unix timestamp when the transaction was posted.
	CreatedAt int64

	// Seq is the posting order among transactions of the same date.
	// It is assigned by the store and kept across updates.
	Seq int64
}

// Touches reports whether the transaction references accountID on either side.
func (t *Transaction) Touches(accountID string) bool {
	return t.AccountID == accountID || t.ToAccountID == accountID
}
