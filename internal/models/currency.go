package models

import "github.com/shopspring/decimal"

// Currency is a currency known to the ledger.
type Currency struct {
	// ID is the unique identifier for the currency (UUID format).
	ID string

	// Code is the unique ISO-like code, e.g. "USD".
	Code string

	// Symbol is the display symbol, e.g. "$".
	Symbol string

	// Decimals is the display precision used when rounding amounts.
	Decimals int32

	// Rate is the value of one unit of this currency expressed in base-currency units.
	// The base currency always has a rate of exactly 1.
	Rate decimal.Decimal

	// IsBase marks the single household base currency.
	IsBase bool

	// CreatedAt is the Unix timestamp when the currency was created.
	CreatedAt int64
}
