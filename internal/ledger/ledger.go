// Package ledger implements the household ledger on top of a storage.Store.
//
// Every mutation that touches more than one row runs inside a single
// Store.InTx unit, and only the Store handed to the unit is used within it.
package ledger

import (
	"log/slog"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// Recorder receives ledger events after they are committed.
type Recorder interface {
	TransactionPosted(t models.TransactionType)
	DebtPaidOff(t models.DebtType)
	BaseCurrencyChanged()
}

type nopRecorder struct{}

func (nopRecorder) TransactionPosted(models.TransactionType) {}
func (nopRecorder) DebtPaidOff(models.DebtType)              {}
func (nopRecorder) BaseCurrencyChanged()                     {}

// Ledger groups the ledger components around one store.
type Ledger struct {
	Currencies   *CurrencyRegistry
	Accounts     *Accounts
	Transactions *Transactions
	Debts        *DebtTracker
}

// Option configures a Ledger.
type Option func(*deps)

type deps struct {
	store    storage.Store
	logger   *slog.Logger
	recorder Recorder
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.logger = l }
}

// WithRecorder sets the event recorder.
func WithRecorder(r Recorder) Option {
	return func(d *deps) { d.recorder = r }
}

// New wires the ledger components to store.
func New(store storage.Store, opts ...Option) *Ledger {
	d := &deps{store: store, logger: slog.Default(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(d)
	}

	l := &Ledger{
		Currencies: &CurrencyRegistry{deps: d},
		Accounts:   &Accounts{deps: d},
		Debts:      &DebtTracker{deps: d},
	}
	l.Transactions = &Transactions{deps: d, debts: l.Debts}
	l.Debts.transactions = l.Transactions
	l.Accounts.debts = l.Debts
	return l
}
