package service

import (
	"strings"
	"time"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/pkg/api"
)

func toCurrency(c models.Currency) api.Currency {
	return api.Currency{
		ID:        c.ID,
		Code:      c.Code,
		Symbol:    c.Symbol,
		Decimals:  c.Decimals,
		Rate:      c.Rate,
		IsBase:    c.IsBase,
		CreatedAt: c.CreatedAt,
	}
}

func toCurrencies(currencies []models.Currency) []api.Currency {
	out := make([]api.Currency, len(currencies))
	for i, c := range currencies {
		out[i] = toCurrency(c)
	}
	return out
}

// toCurrencyPtr keeps nil for a missing base currency.
func toCurrencyPtr(c *models.Currency) *api.Currency {
	if c == nil {
		return nil
	}
	out := toCurrency(*c)
	return &out
}

func toAccount(a models.Account) api.Account {
	out := api.Account{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		CurrencyID:     a.CurrencyID,
		InitialBalance: a.InitialBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
	if a.Debt != nil {
		out.Debt = &api.DebtDetails{
			DebtType:     string(a.Debt.DebtType),
			TargetAmount: a.Debt.TargetAmount,
			Counterparty: a.Debt.Counterparty,
			IsPaidOff:    a.Debt.IsPaidOff,
		}
		if a.Debt.DueDate != nil {
			out.Debt.DueDate = formatDate(*a.Debt.DueDate)
		}
	}
	return out
}

func toAccounts(accounts []models.Account) []api.Account {
	out := make([]api.Account, len(accounts))
	for i, a := range accounts {
		out[i] = toAccount(a)
	}
	return out
}

func toCategory(c models.Category) api.Category {
	return api.Category{ID: c.ID, Name: c.Name, Kind: string(c.Kind), CreatedAt: c.CreatedAt}
}

func toTransaction(t models.Transaction) api.Transaction {
	return api.Transaction{
		ID:           t.ID,
		Type:         string(t.Type),
		AccountID:    t.AccountID,
		Amount:       t.Amount,
		ToAccountID:  t.ToAccountID,
		ToAmount:     t.ToAmount,
		ExchangeRate: t.ExchangeRate,
		CategoryID:   t.CategoryID,
		Date:         formatDate(t.Date),
		Description:  t.Description,
		Tags:         t.Tags,
		CreatedAt:    t.CreatedAt,
	}
}

func toDebtSummary(s ledger.DebtSummary) api.DebtSummary {
	return api.DebtSummary{
		Debt:      toAccount(s.Account),
		Paid:      s.Paid,
		Remaining: s.Remaining,
		Progress:  s.Progress,
		IsPaidOff: s.IsPaidOff(),
	}
}

func toUser(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

func formatDate(t time.Time) string {
	return t.Format(calculator.DateFormat)
}

// parseDate reads a YYYY-MM-DD date. An empty string is the zero time.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(calculator.DateFormat, s)
	if err != nil {
		return time.Time{}, models.Invalid(field, "must be a YYYY-MM-DD date, got %q", s)
	}
	return t, nil
}

func toPostInput(in api.TransactionInput) (ledger.PostInput, error) {
	date, err := parseDate("date", in.Date)
	if err != nil {
		return ledger.PostInput{}, err
	}
	return ledger.PostInput{
		Type:        models.TransactionType(in.Type),
		AccountID:   in.AccountID,
		ToAccountID: in.ToAccountID,
		Amount:      in.Amount,
		ToAmount:    in.ToAmount,
		CategoryID:  in.CategoryID,
		Date:        date,
		Description: in.Description,
		Tags:        in.Tags,
	}, nil
}
