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

// Accounts manages regular accounts and derives balances by replay.
type Accounts struct {
	*deps
	debts *DebtTracker
}

// CreateAccountInput describes a new regular account.
type CreateAccountInput struct {
	Name           string
	CurrencyID     string
	InitialBalance decimal.Decimal
}

// UpdateAccountInput carries the fields to change; nil fields are kept.
// Debt-only fields are rejected on regular accounts.
type UpdateAccountInput struct {
	Name           *string
	IsActive       *bool
	InitialBalance *decimal.Decimal
	CurrencyID     *string

	TargetAmount *decimal.Decimal
	DueDate      *time.Time
	ClearDueDate bool
	Counterparty *string
}

// AccountBalance is an account's replayed balance, also in base currency.
type AccountBalance struct {
	Account  models.Account
	Currency models.Currency
	Balance  decimal.Decimal

	// Base is nil when no base currency is configured; BalanceInBase is then zero.
	Base          *models.Currency
	BalanceInBase decimal.Decimal
}

// NetWorth sums regular balances and debt impact in base currency.
type NetWorth struct {
	Base          *models.Currency
	AccountsTotal decimal.Decimal
	DebtsImpact   decimal.Decimal
	Total         decimal.Decimal
}

// Create adds a regular account.
func (a *Accounts) Create(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name", "must not be empty")
	}
	if _, err := a.store.GetCurrency(ctx, in.CurrencyID); err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:           name,
		Type:           models.AccountRegular,
		CurrencyID:     in.CurrencyID,
		InitialBalance: in.InitialBalance,
		IsActive:       true,
	}
	if err := a.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	a.logger.Info("Account created", "account_id", account.ID, "name", account.Name)
	return account, nil
}

// Get returns one account of either type.
func (a *Accounts) Get(ctx context.Context, id string) (*models.Account, error) {
	return a.store.GetAccount(ctx, id)
}

// List returns accounts matching filter.
func (a *Accounts) List(ctx context.Context, filter storage.AccountFilter) ([]models.Account, error) {
	return a.store.ListAccounts(ctx, filter)
}

// Update changes account fields. IsPaidOff and the account type are never
// editable here; a target change re-evaluates the payoff state.
func (a *Accounts) Update(ctx context.Context, id string, in UpdateAccountInput) (*models.Account, error) {
	var (
		updated  *models.Account
		paidOff  bool
		debtType models.DebtType
	)
	err := a.store.InTx(ctx, func(st storage.Store) error {
		account, err := st.GetAccount(ctx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return models.Invalid("name", "must not be empty")
			}
			account.Name = name
		}
		if in.IsActive != nil {
			account.IsActive = *in.IsActive
		}
		if in.InitialBalance != nil {
			if account.IsDebt() {
				return models.Invalid("initial_balance", "not editable on debt accounts")
			}
			account.InitialBalance = *in.InitialBalance
		}
		if in.CurrencyID != nil && *in.CurrencyID != account.CurrencyID {
			n, err := st.CountTransactions(ctx, storage.TransactionFilter{AccountIDs: []string{id}})
			if err != nil {
				return err
			}
			if n > 0 {
				return models.Rejected("cannot change the currency of account %q with %d transaction(s)", account.Name, n)
			}
			if _, err := st.GetCurrency(ctx, *in.CurrencyID); err != nil {
				return err
			}
			account.CurrencyID = *in.CurrencyID
		}

		targetChanged := false
		if in.TargetAmount != nil || in.DueDate != nil || in.ClearDueDate || in.Counterparty != nil {
			if !account.IsDebt() {
				return models.Invalid("target_amount", "debt fields are not allowed on regular accounts")
			}
			if in.TargetAmount != nil {
				if err := validateTarget(*in.TargetAmount); err != nil {
					return err
				}
				targetChanged = !in.TargetAmount.Equal(account.Debt.TargetAmount)
				account.Debt.TargetAmount = *in.TargetAmount
			}
			if in.ClearDueDate {
				account.Debt.DueDate = nil
			} else if in.DueDate != nil {
				due := calculator.Day(*in.DueDate)
				account.Debt.DueDate = &due
			}
			if in.Counterparty != nil {
				account.Debt.Counterparty = strings.TrimSpace(*in.Counterparty)
			}
		}

		if err := st.UpdateAccount(ctx, account); err != nil {
			return err
		}
		if targetChanged {
			if paidOff, err = a.debts.recalculate(ctx, st, id); err != nil {
				return err
			}
			if account, err = st.GetAccount(ctx, id); err != nil {
				return err
			}
			debtType = account.Debt.DebtType
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paidOff {
		a.recorder.DebtPaidOff(debtType)
	}
	a.logger.Info("Account updated", "account_id", id)
	return updated, nil
}

// Delete soft-removes an account that no transaction references.
func (a *Accounts) Delete(ctx context.Context, id string) error {
	err := a.store.InTx(ctx, func(st storage.Store) error {
		return removeUnreferenced(ctx, st, id)
	})
	if err != nil {
		return err
	}
	a.logger.Info("Account removed", "account_id", id)
	return nil
}

// removeUnreferenced is shared by account and debt deletion.
func removeUnreferenced(ctx context.Context, st storage.Store, id string) error {
	account, err := st.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	n, err := st.CountTransactions(ctx, storage.TransactionFilter{AccountIDs: []string{id}})
	if err != nil {
		return err
	}
	if n > 0 {
		if account.IsDebt() {
			return models.Rejected("debt %q has payment history and cannot be deleted", account.Name)
		}
		return models.Rejected("account %q has %d transaction(s) and cannot be deleted", account.Name, n)
	}
	return st.RemoveAccount(ctx, id)
}

// Balance replays the account's history over its initial balance.
func (a *Accounts) Balance(ctx context.Context, id string) (*AccountBalance, error) {
	account, err := a.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	currency, err := a.store.GetCurrency(ctx, account.CurrencyID)
	if err != nil {
		return nil, err
	}
	base, err := a.store.GetBaseCurrency(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := a.store.ListTransactions(ctx, storage.TransactionFilter{AccountIDs: []string{id}})
	if err != nil {
		return nil, err
	}

	balance := calculator.CurrentBalance(*account, txs)
	result := &AccountBalance{
		Account:       *account,
		Currency:      *currency,
		Balance:       balance,
		Base:          base,
		BalanceInBase: decimal.Zero,
	}
	if base != nil {
		result.BalanceInBase = calculator.Round(calculator.ConvertToBase(balance, *currency, base), *base)
	}

	a.logger.Debug("Balance computed", "account_id", id, "transactions", len(txs), "balance", balance.String())
	return result, nil
}

// MaxHistoryDays bounds the length of one balance history request.
const MaxHistoryDays = 10 * 366

// BalanceHistory returns the daily balance series of the given accounts in
// base currency. With no ids every active regular account is included.
func (a *Accounts) BalanceHistory(ctx context.Context, ids []string, start, end time.Time) (calculator.BalanceHistory, error) {
	if start.IsZero() || end.IsZero() {
		return calculator.BalanceHistory{}, models.Invalid("start_date", "start and end dates are required")
	}
	if calculator.Day(end).After(calculator.Day(start).AddDate(0, 0, MaxHistoryDays-1)) {
		return calculator.BalanceHistory{}, models.Invalid("end_date", "range exceeds %d days", MaxHistoryDays)
	}

	var accounts []models.Account
	if len(ids) == 0 {
		var err error
		accounts, err = a.store.ListAccounts(ctx, storage.AccountFilter{Type: models.AccountRegular})
		if err != nil {
			return calculator.BalanceHistory{}, err
		}
	} else {
		for _, id := range ids {
			account, err := a.store.GetAccount(ctx, id)
			if err != nil {
				return calculator.BalanceHistory{}, err
			}
			accounts = append(accounts, *account)
		}
	}

	currencies, base, err := currencyIndex(ctx, a.store)
	if err != nil {
		return calculator.BalanceHistory{}, err
	}

	input := make([]calculator.HistoryAccount, len(accounts))
	accountIDs := make([]string, len(accounts))
	for i, account := range accounts {
		input[i] = calculator.HistoryAccount{Account: account, Currency: currencies[account.CurrencyID]}
		accountIDs[i] = account.ID
	}

	var txs []models.Transaction
	if len(accountIDs) > 0 {
		txs, err = a.store.ListTransactions(ctx, storage.TransactionFilter{AccountIDs: accountIDs, To: end})
		if err != nil {
			return calculator.BalanceHistory{}, err
		}
	}

	return calculator.CalculateBalanceHistory(input, txs, start, end, base)
}

// NetWorth sums active regular balances and the impact of open debts, all in
// base currency. With no base currency the summary is zero.
func (a *Accounts) NetWorth(ctx context.Context) (*NetWorth, error) {
	currencies, base, err := currencyIndex(ctx, a.store)
	if err != nil {
		return nil, err
	}
	summary := &NetWorth{Base: base, AccountsTotal: decimal.Zero, DebtsImpact: decimal.Zero, Total: decimal.Zero}
	if base == nil {
		return summary, nil
	}

	regular, err := a.store.ListAccounts(ctx, storage.AccountFilter{Type: models.AccountRegular})
	if err != nil {
		return nil, err
	}
	for _, account := range regular {
		txs, err := a.store.ListTransactions(ctx, storage.TransactionFilter{AccountIDs: []string{account.ID}})
		if err != nil {
			return nil, err
		}
		balance := calculator.CurrentBalance(account, txs)
		summary.AccountsTotal = summary.AccountsTotal.Add(calculator.ConvertToBase(balance, currencies[account.CurrencyID], base))
	}

	positions, err := a.debts.positions(ctx, a.store, currencies)
	if err != nil {
		return nil, err
	}
	summary.DebtsImpact = calculator.DebtsImpact(positions, base)

	summary.AccountsTotal = calculator.Round(summary.AccountsTotal, *base)
	summary.DebtsImpact = calculator.Round(summary.DebtsImpact, *base)
	summary.Total = summary.AccountsTotal.Add(summary.DebtsImpact)
	return summary, nil
}

// CreateCategory adds an income or expense category.
func (a *Accounts) CreateCategory(ctx context.Context, name string, kind models.CategoryKind) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Invalid("name", "must not be empty")
	}
	if kind != models.CategoryIncome && kind != models.CategoryExpense {
		return nil, models.Invalid("kind", "must be income or expense, got %q", kind)
	}
	c := &models.Category{Name: name, Kind: kind}
	if err := a.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	a.logger.Info("Category created", "category_id", c.ID, "name", c.Name, "kind", c.Kind)
	return c, nil
}

// ListCategories returns every category.
func (a *Accounts) ListCategories(ctx context.Context) ([]models.Category, error) {
	return a.store.ListCategories(ctx)
}
