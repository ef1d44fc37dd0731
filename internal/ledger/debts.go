package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// DebtTracker owns debt accounts and their payoff state.
type DebtTracker struct {
	*deps
	transactions *Transactions
}

// CreateDebtInput describes a new debt account.
type CreateDebtInput struct {
	Name         string
	CurrencyID   string
	DebtType     models.DebtType
	TargetAmount decimal.Decimal
	DueDate      *time.Time
	Counterparty string
}

// PayDebtInput pays an i_owe debt from a regular account. Amount is in the
// payer's currency.
type PayDebtInput struct {
	DebtID        string
	FromAccountID string
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	Tags          []string
}

// CollectDebtInput collects on an owed_to_me debt into a regular account.
// DebtAmount is in the debt's currency.
type CollectDebtInput struct {
	DebtID      string
	ToAccountID string
	DebtAmount  decimal.Decimal
	Date        time.Time
	Description string
	Tags        []string
}

// DebtSummary is a debt with its derived payoff figures.
type DebtSummary struct {
	Account   models.Account
	Currency  models.Currency
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Progress  decimal.Decimal
}

// IsPaidOff reports the stored payoff flag.
func (s DebtSummary) IsPaidOff() bool {
	return s.Account.Debt != nil && s.Account.Debt.IsPaidOff
}

// Create adds a debt account with a zero initial balance.
func (d *DebtTracker) Create(ctx context.Context, in CreateDebtInput) (*models.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name", "must not be empty")
	}
	if !in.DebtType.Valid() {
		return nil, models.Invalid("debt_type", "must be i_owe or owed_to_me, got %q", in.DebtType)
	}
	if err := validateTarget(in.TargetAmount); err != nil {
		return nil, err
	}
	if _, err := d.store.GetCurrency(ctx, in.CurrencyID); err != nil {
		return nil, err
	}

	details := &models.DebtDetails{
		DebtType:     in.DebtType,
		TargetAmount: in.TargetAmount,
		Counterparty: strings.TrimSpace(in.Counterparty),
	}
	if in.DueDate != nil {
		due := calculator.Day(*in.DueDate)
		details.DueDate = &due
	}
	account := &models.Account{
		Name:           name,
		Type:           models.AccountDebt,
		CurrencyID:     in.CurrencyID,
		InitialBalance: decimal.Zero,
		IsActive:       true,
		Debt:           details,
	}
	if err := d.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	d.logger.Info("Debt created",
		"debt_id", account.ID,
		"name", account.Name,
		"debt_type", in.DebtType,
		"target", in.TargetAmount.String(),
	)
	return account, nil
}

// Pay posts a debt_payment against an i_owe debt.
func (d *DebtTracker) Pay(ctx context.Context, in PayDebtInput) (*models.Transaction, error) {
	return d.transactions.Post(ctx, PostInput{
		Type:        models.TxDebtPayment,
		AccountID:   in.FromAccountID,
		ToAccountID: in.DebtID,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		Tags:        in.Tags,
	})
}

// Collect posts a debt_collection against an owed_to_me debt.
func (d *DebtTracker) Collect(ctx context.Context, in CollectDebtInput) (*models.Transaction, error) {
	debtAmount := in.DebtAmount
	return d.transactions.Post(ctx, PostInput{
		Type:        models.TxDebtCollection,
		AccountID:   in.ToAccountID,
		ToAccountID: in.DebtID,
		ToAmount:    &debtAmount,
		Date:        in.Date,
		Description: in.Description,
		Tags:        in.Tags,
	})
}

// Reopen clears the payoff flag of a settled debt so further payments can be
// posted against it.
func (d *DebtTracker) Reopen(ctx context.Context, id string) (*models.Account, error) {
	var debt *models.Account
	err := d.store.InTx(ctx, func(st storage.Store) error {
		var err error
		debt, err = getDebt(ctx, st, id)
		if err != nil {
			return err
		}
		if !debt.Debt.IsPaidOff {
			return models.Rejected("debt %q is not paid off", debt.Name)
		}
		debt.Debt.IsPaidOff = false
		return st.UpdateAccount(ctx, debt)
	})
	if err != nil {
		return nil, err
	}
	d.logger.Info("Debt reopened", "debt_id", id)
	return debt, nil
}

// Get returns a debt with its payoff figures.
func (d *DebtTracker) Get(ctx context.Context, id string) (*DebtSummary, error) {
	debt, err := getDebt(ctx, d.store, id)
	if err != nil {
		return nil, err
	}
	currency, err := d.store.GetCurrency(ctx, debt.CurrencyID)
	if err != nil {
		return nil, err
	}
	return d.summarize(ctx, d.store, *debt, *currency)
}

// List returns every debt, active or not, with its payoff figures.
func (d *DebtTracker) List(ctx context.Context) ([]DebtSummary, error) {
	debts, err := d.store.ListAccounts(ctx, storage.AccountFilter{Type: models.AccountDebt, IncludeInactive: true})
	if err != nil {
		return nil, err
	}
	currencies, _, err := currencyIndex(ctx, d.store)
	if err != nil {
		return nil, err
	}

	summaries := make([]DebtSummary, 0, len(debts))
	for _, debt := range debts {
		s, err := d.summarize(ctx, d.store, debt, currencies[debt.CurrencyID])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *s)
	}
	return summaries, nil
}

// Delete removes a debt that has no payment history.
func (d *DebtTracker) Delete(ctx context.Context, id string) error {
	err := d.store.InTx(ctx, func(st storage.Store) error {
		if _, err := getDebt(ctx, st, id); err != nil {
			return err
		}
		return removeUnreferenced(ctx, st, id)
	})
	if err != nil {
		return err
	}
	d.logger.Info("Debt removed", "debt_id", id)
	return nil
}

// checkAndMarkAsPaidOff flags the debt as paid off once nothing remains.
// It never clears the flag. The debt is returned when it flipped.
func (d *DebtTracker) checkAndMarkAsPaidOff(ctx context.Context, st storage.Store, id string) (*models.Account, error) {
	debt, status, err := d.status(ctx, st, id)
	if err != nil {
		return nil, err
	}
	if !status.Settled || debt.Debt.IsPaidOff {
		return nil, nil
	}
	debt.Debt.IsPaidOff = true
	if err := st.UpdateAccount(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// recalculate sets the payoff flag from the payment history after a
// transaction was removed or the target changed. It reports whether the debt
// became paid off.
func (d *DebtTracker) recalculate(ctx context.Context, st storage.Store, id string) (bool, error) {
	debt, status, err := d.status(ctx, st, id)
	if err != nil {
		return false, err
	}
	if debt.Debt.IsPaidOff == status.Settled {
		return false, nil
	}
	debt.Debt.IsPaidOff = status.Settled
	if err := st.UpdateAccount(ctx, debt); err != nil {
		return false, err
	}
	d.logger.Debug("Debt payoff recalculated", "debt_id", id, "is_paid_off", status.Settled)
	return status.Settled, nil
}

func (d *DebtTracker) status(ctx context.Context, st storage.Store, id string) (*models.Account, calculator.DebtStatus, error) {
	debt, err := getDebt(ctx, st, id)
	if err != nil {
		return nil, calculator.DebtStatus{}, err
	}
	txs, err := st.ListTransactions(ctx, storage.TransactionFilter{ToAccountID: id})
	if err != nil {
		return nil, calculator.DebtStatus{}, err
	}
	return debt, calculator.CalculateDebtStatus(*debt, txs), nil
}

func (d *DebtTracker) summarize(ctx context.Context, st storage.Store, debt models.Account, currency models.Currency) (*DebtSummary, error) {
	txs, err := st.ListTransactions(ctx, storage.TransactionFilter{ToAccountID: debt.ID})
	if err != nil {
		return nil, err
	}
	status := calculator.CalculateDebtStatus(debt, txs)
	return &DebtSummary{
		Account:   debt,
		Currency:  currency,
		Paid:      status.Paid,
		Remaining: status.Remaining,
		Progress:  status.Progress,
	}, nil
}

// positions lists the active debts with their remaining amounts for net worth.
func (d *DebtTracker) positions(ctx context.Context, st storage.Store, currencies map[string]models.Currency) ([]calculator.DebtPosition, error) {
	debts, err := st.ListAccounts(ctx, storage.AccountFilter{Type: models.AccountDebt})
	if err != nil {
		return nil, err
	}
	positions := make([]calculator.DebtPosition, 0, len(debts))
	for _, debt := range debts {
		s, err := d.summarize(ctx, st, debt, currencies[debt.CurrencyID])
		if err != nil {
			return nil, err
		}
		positions = append(positions, calculator.DebtPosition{Account: debt, Currency: s.Currency, Remaining: s.Remaining})
	}
	return positions, nil
}

func getDebt(ctx context.Context, st storage.Store, id string) (*models.Account, error) {
	account, err := st.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.IsDebt() {
		return nil, models.Rejected("account %q is not a debt", account.Name)
	}
	return account, nil
}

func validateTarget(target decimal.Decimal) error {
	if !target.IsPositive() {
		return models.Invalid("target_amount", "must be > 0, got %s", target)
	}
	return nil
}
