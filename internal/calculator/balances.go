package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// DateFormat is the day layout used for history dates and stored transaction dates.
const DateFormat = "2006-01-02"

// FallbackSymbol is reported by balance history when no base currency exists.
const FallbackSymbol = "$"

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Delta returns the signed effect of tx on the balance of accountID.
//
// The primary side follows the income/expense sign rule for every kind.
// Only transfers credit the counter side: a debt's remaining obligation is
// tracked by the debt functions, not by balance replay.
func Delta(accountID string, tx models.Transaction) decimal.Decimal {
	d := decimal.Zero
	if tx.AccountID == accountID {
		switch tx.Type {
		case models.TxIncome, models.TxDebtCollection:
			d = d.Add(tx.Amount)
		case models.TxExpense, models.TxDebtPayment, models.TxTransfer:
			d = d.Sub(tx.Amount)
		}
	}
	if tx.ToAccountID == accountID && tx.Type == models.TxTransfer && tx.ToAmount != nil {
		d = d.Add(*tx.ToAmount)
	}
	return d
}

// CurrentBalance replays every transaction over the account's initial balance.
func CurrentBalance(account models.Account, txs []models.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for _, tx := range txs {
		balance = balance.Add(Delta(account.ID, tx))
	}
	return balance
}

// BalanceAsOf replays the transactions dated on or before asOf.
func BalanceAsOf(account models.Account, txs []models.Transaction, asOf time.Time) decimal.Decimal {
	cutoff := Day(asOf)
	balance := account.InitialBalance
	for _, tx := range txs {
		if Day(tx.Date).After(cutoff) {
			continue
		}
		balance = balance.Add(Delta(account.ID, tx))
	}
	return balance
}

// HistoryAccount is an account with its currency, as input to balance history.
type HistoryAccount struct {
	Account  models.Account
	Currency models.Currency
}

// HistorySeries is one line of the balance history chart.
type HistorySeries struct {
	Name string    `json:"name"`
	Type string    `json:"type"`
	Data []float64 `json:"data"`
}

// BalanceHistory is a daily time series of balances in base currency.
type BalanceHistory struct {
	Dates    []string        `json:"dates"`
	Series   []HistorySeries `json:"series"`
	Currency string          `json:"currency"`
}

// TotalSeriesName names the synthetic series summing every account.
const TotalSeriesName = "Total"

// CalculateBalanceHistory builds one row per calendar day in [start, end] for
// each account plus a Total series, all expressed in base currency.
//
// Days without activity repeat the latest balance. With a nil base every
// value is zero and the currency symbol falls back to FallbackSymbol.
func CalculateBalanceHistory(accounts []HistoryAccount, txs []models.Transaction, start, end time.Time, base *models.Currency) (BalanceHistory, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return BalanceHistory{}, models.Invalid("end_date", "must not be before start_date")
	}

	history := BalanceHistory{Currency: FallbackSymbol}
	if base != nil {
		history.Currency = base.Symbol
	}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		history.Dates = append(history.Dates, date.Format(DateFormat))
	}
	days := len(history.Dates)

	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	byDay := make(map[string][]models.Transaction)
	for _, tx := range sorted {
		d := Day(tx.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		key := d.Format(DateFormat)
		byDay[key] = append(byDay[key], tx)
	}

	totals := make([]decimal.Decimal, days)
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, ha := range accounts {
		running := ha.Account.InitialBalance
		for _, tx := range sorted {
			if !Day(tx.Date).Before(start) {
				break
			}
			running = running.Add(Delta(ha.Account.ID, tx))
		}

		series := HistorySeries{
			Name: ha.Account.Name,
			Type: string(ha.Account.Type),
			Data: make([]float64, days),
		}
		for i, key := range history.Dates {
			for _, tx := range byDay[key] {
				running = running.Add(Delta(ha.Account.ID, tx))
			}
			inBase := ConvertToBase(running, ha.Currency, base)
			totals[i] = totals[i].Add(inBase)
			series.Data[i] = roundBase(inBase, base)
		}
		history.Series = append(history.Series, series)
	}

	total := HistorySeries{Name: TotalSeriesName, Type: "total", Data: make([]float64, days)}
	for i, v := range totals {
		total.Data[i] = roundBase(v, base)
	}
	history.Series = append(history.Series, total)

	return history, nil
}

func roundBase(v decimal.Decimal, base *models.Currency) float64 {
	if base == nil {
		return 0
	}
	return Round(v, *base).InexactFloat64()
}
