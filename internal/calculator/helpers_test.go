package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

var (
	usd = models.Currency{ID: "usd", Code: "USD", Symbol: "$", Decimals: 2, Rate: d("1"), IsBase: true}
	eur = models.Currency{ID: "eur", Code: "EUR", Symbol: "€", Decimals: 2, Rate: d("0.9")}
	jpy = models.Currency{ID: "jpy", Code: "JPY", Symbol: "¥", Decimals: 0, Rate: d("0.0067")}
)

func regular(id string, cur models.Currency, initial string) models.Account {
	return models.Account{ID: id, Name: id, Type: models.AccountRegular, CurrencyID: cur.ID, InitialBalance: d(initial), IsActive: true}
}

func debt(id string, cur models.Currency, t models.DebtType, target string) models.Account {
	return models.Account{
		ID: id, Name: id, Type: models.AccountDebt, CurrencyID: cur.ID, InitialBalance: decimal.Zero, IsActive: true,
		Debt: &models.DebtDetails{DebtType: t, TargetAmount: d(target)},
	}
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
