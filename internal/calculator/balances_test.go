package calculator

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/fintrack/internal/models"
)

func TestCurrentBalance(t *testing.T) {
	checking := regular("checking", usd, "1000")
	savings := regular("savings", eur, "50")
	loan := debt("loan", usd, models.DebtIOwe, "500")
	lent := debt("lent", usd, models.DebtOwedToMe, "300")

	txs := []models.Transaction{
		{Type: models.TxIncome, AccountID: "checking", Amount: d("200"), Date: day(2025, 1, 1)},
		{Type: models.TxExpense, AccountID: "checking", Amount: d("50"), Date: day(2025, 1, 2)},
		{Type: models.TxTransfer, AccountID: "checking", Amount: d("100"), ToAccountID: "savings", ToAmount: dp("111.11"), Date: day(2025, 1, 3)},
		{Type: models.TxDebtPayment, AccountID: "checking", Amount: d("75"), ToAccountID: "loan", ToAmount: dp("75"), Date: day(2025, 1, 4)},
		{Type: models.TxDebtCollection, AccountID: "checking", Amount: d("30"), ToAccountID: "lent", ToAmount: dp("30"), Date: day(2025, 1, 5)},
	}

	tests := []struct {
		account models.Account
		want    string
	}{
		// 1000 + 200 - 50 - 100 - 75 + 30
		{checking, "1005"},
		{savings, "161.11"},
		// debt accounts are not credited by replay
		{loan, "0"},
		{lent, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.account.ID, func(t *testing.T) {
			assertDecimal(t, "CurrentBalance", CurrentBalance(tt.account, txs), d(tt.want))
		})
	}
}

func TestBalanceAsOf(t *testing.T) {
	acc := regular("a", usd, "10")
	txs := []models.Transaction{
		{Type: models.TxIncome, AccountID: "a", Amount: d("5"), Date: day(2025, 3, 1)},
		{Type: models.TxIncome, AccountID: "a", Amount: d("7"), Date: time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)},
	}
	assertDecimal(t, "before", BalanceAsOf(acc, txs, day(2025, 2, 28)), d("10"))
	assertDecimal(t, "first day", BalanceAsOf(acc, txs, day(2025, 3, 1)), d("15"))
	assertDecimal(t, "same day later hour", BalanceAsOf(acc, txs, day(2025, 3, 2)), d("22"))
}

func TestCalculateBalanceHistory(t *testing.T) {
	checking := regular("checking", usd, "100")
	savings := regular("savings", eur, "100")
	accounts := []HistoryAccount{{checking, usd}, {savings, eur}}
	txs := []models.Transaction{
		{Type: models.TxIncome, AccountID: "checking", Amount: d("50"), Date: day(2025, 1, 1)}, // before window
		{Type: models.TxExpense, AccountID: "checking", Amount: d("30"), Date: day(2025, 1, 3)},
		{Type: models.TxTransfer, AccountID: "checking", Amount: d("20"), ToAccountID: "savings", ToAmount: dp("22.22"), Date: day(2025, 1, 5)},
		{Type: models.TxIncome, AccountID: "checking", Amount: d("999"), Date: day(2025, 2, 1)}, // after window
	}

	got, err := CalculateBalanceHistory(accounts, txs, day(2025, 1, 2), day(2025, 1, 5), &usd)
	if err != nil {
		t.Fatalf("CalculateBalanceHistory failed: %v", err)
	}

	want := BalanceHistory{
		Dates: []string{"2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05"},
		Series: []HistorySeries{
			{Name: "checking", Type: "regular", Data: []float64{150, 120, 120, 100}},
			// 100 EUR = 90 USD; 122.22 EUR = 109.998 USD
			{Name: "savings", Type: "regular", Data: []float64{90, 90, 90, 110}},
			{Name: TotalSeriesName, Type: "total", Data: []float64{240, 210, 210, 210}},
		},
		Currency: "$",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CalculateBalanceHistory mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateBalanceHistory_NoBase(t *testing.T) {
	acc := regular("a", eur, "100")
	got, err := CalculateBalanceHistory([]HistoryAccount{{acc, eur}}, nil, day(2025, 1, 1), day(2025, 1, 3), nil)
	if err != nil {
		t.Fatalf("CalculateBalanceHistory failed: %v", err)
	}
	if got.Currency != FallbackSymbol {
		t.Errorf("Currency = %q, want %q", got.Currency, FallbackSymbol)
	}
	if len(got.Dates) != 3 {
		t.Errorf("got %d dates, want 3", len(got.Dates))
	}
	for _, s := range got.Series {
		for i, v := range s.Data {
			if v != 0 {
				t.Errorf("%s[%d] = %v, want 0", s.Name, i, v)
			}
		}
	}
}

func TestCalculateBalanceHistory_InvalidRange(t *testing.T) {
	_, err := CalculateBalanceHistory(nil, nil, day(2025, 1, 2), day(2025, 1, 1), &usd)
	if !models.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCalculateBalanceHistory_DayCount(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		wantDays   int
		wantLast   string
	}{
		{"single day", day(2025, 1, 1), day(2025, 1, 1), 1, "2025-01-01"},
		{"leap february", day(2024, 2, 27), day(2024, 3, 1), 4, "2024-03-01"},
		// four Gregorian centuries hold 146097 days
		{"four centuries", day(1700, 1, 1), day(2100, 1, 1), 146098, "2100-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateBalanceHistory(nil, nil, tt.start, tt.end, &usd)
			if err != nil {
				t.Fatalf("CalculateBalanceHistory failed: %v", err)
			}
			if len(got.Dates) != tt.wantDays {
				t.Fatalf("got %d dates, want %d", len(got.Dates), tt.wantDays)
			}
			if last := got.Dates[len(got.Dates)-1]; last != tt.wantLast {
				t.Errorf("last date = %s, want %s", last, tt.wantLast)
			}
			if n := len(got.Series[0].Data); n != tt.wantDays {
				t.Errorf("total series has %d points, want %d", n, tt.wantDays)
			}
		})
	}
}

// The last history value must match a full replay when the window ends today.
func TestBalanceHistoryMatchesReplay(t *testing.T) {
	today := Day(time.Now())
	acc := regular("a", usd, "12.34")
	var txs []models.Transaction
	for i := 0; i < 40; i++ {
		typ := models.TxIncome
		if i%3 == 0 {
			typ = models.TxExpense
		}
		txs = append(txs, models.Transaction{
			Type: typ, AccountID: "a", Amount: d("3.21"), Date: today.AddDate(0, 0, -i),
		})
	}

	h, err := CalculateBalanceHistory([]HistoryAccount{{acc, usd}}, txs, today.AddDate(0, 0, -10), today, &usd)
	if err != nil {
		t.Fatalf("CalculateBalanceHistory failed: %v", err)
	}
	last := h.Series[0].Data[len(h.Series[0].Data)-1]
	want := CurrentBalance(acc, txs).InexactFloat64()
	if last != want {
		t.Errorf("last history value = %v, replay = %v", last, want)
	}
}
