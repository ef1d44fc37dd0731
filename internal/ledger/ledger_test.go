package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
)

type recorder struct {
	posted  map[models.TransactionType]int
	paidOff int
	rebases int
}

func (r *recorder) TransactionPosted(t models.TransactionType) { r.posted[t]++ }
func (r *recorder) DebtPaidOff(models.DebtType)                { r.paidOff++ }
func (r *recorder) BaseCurrencyChanged()                       { r.rebases++ }

func setupTestLedger(t *testing.T) (*Ledger, *recorder) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rec := &recorder{posted: make(map[models.TransactionType]int)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := New(store, WithLogger(logger), WithRecorder(rec))
	l.Transactions.now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }
	return l, rec
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// seedCurrencies creates USD (base), EUR at 0.9 and JPY at 0.0067.
func seedCurrencies(t *testing.T, l *Ledger) (usd, eur, jpy *models.Currency) {
	t.Helper()
	ctx := context.Background()
	var err error
	if usd, err = l.Currencies.Create(ctx, CreateCurrencyInput{Code: "usd"}); err != nil {
		t.Fatalf("Create USD failed: %v", err)
	}
	if eur, err = l.Currencies.Create(ctx, CreateCurrencyInput{Code: "EUR", Rate: d("0.9")}); err != nil {
		t.Fatalf("Create EUR failed: %v", err)
	}
	if jpy, err = l.Currencies.Create(ctx, CreateCurrencyInput{Code: "JPY", Rate: d("0.0067")}); err != nil {
		t.Fatalf("Create JPY failed: %v", err)
	}
	return usd, eur, jpy
}

func mustAccount(t *testing.T, l *Ledger, name, currencyID, initial string) *models.Account {
	t.Helper()
	a, err := l.Accounts.Create(context.Background(), CreateAccountInput{Name: name, CurrencyID: currencyID, InitialBalance: d(initial)})
	if err != nil {
		t.Fatalf("Create account %s failed: %v", name, err)
	}
	return a
}

func mustDebt(t *testing.T, l *Ledger, name, currencyID string, debtType models.DebtType, target string) *models.Account {
	t.Helper()
	a, err := l.Debts.Create(context.Background(), CreateDebtInput{
		Name: name, CurrencyID: currencyID, DebtType: debtType, TargetAmount: d(target), Counterparty: "Bank",
	})
	if err != nil {
		t.Fatalf("Create debt %s failed: %v", name, err)
	}
	return a
}

func countBases(t *testing.T, l *Ledger) int {
	t.Helper()
	all, err := l.Currencies.List(context.Background())
	if err != nil {
		t.Fatalf("List currencies failed: %v", err)
	}
	n := 0
	for _, c := range all {
		if c.IsBase {
			n++
			if !c.Rate.Equal(decimal.NewFromInt(1)) {
				t.Errorf("base currency %s has rate %s", c.Code, c.Rate)
			}
		}
	}
	return n
}

func TestCreateCurrency(t *testing.T) {
	l, _ := setupTestLedger(t)
	ctx := context.Background()
	usd, _, jpy := seedCurrencies(t, l)

	t.Run("first currency becomes base", func(t *testing.T) {
		if !usd.IsBase || !usd.Rate.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected USD to be base with rate 1, got %+v", usd)
		}
		if usd.Code != "USD" || usd.Symbol != "$" || usd.Decimals != 2 {
			t.Errorf("expected ISO defaults for USD, got %+v", usd)
		}
	})

	t.Run("ISO defaults", func(t *testing.T) {
		if jpy.Symbol != "¥" || jpy.Decimals != 0 {
			t.Errorf("expected ¥ with 0 decimals, got %q/%d", jpy.Symbol, jpy.Decimals)
		}
	})

	t.Run("unknown code falls back to code and two decimals", func(t *testing.T) {
		btc, err := l.Currencies.Create(ctx, CreateCurrencyInput{Code: "XBT1", Rate: d("65000")})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if btc.Symbol != "XBT1" || btc.Decimals != 2 {
			t.Errorf("unexpected defaults %+v", btc)
		}
	})

	neg := int32(-1)
	tests := []struct {
		name       string
		input      CreateCurrencyInput
		validation bool
	}{
		{"empty code", CreateCurrencyInput{Code: " ", Rate: d("1")}, true},
		{"bad characters", CreateCurrencyInput{Code: "U$D", Rate: d("1")}, true},
		{"zero rate", CreateCurrencyInput{Code: "GBP"}, true},
		{"negative decimals", CreateCurrencyInput{Code: "SEK", Rate: d("0.1"), Decimals: &neg}, true},
		{"second base", CreateCurrencyInput{Code: "CHF", Rate: d("1"), IsBase: true}, true},
		{"duplicate code", CreateCurrencyInput{Code: "usd", Rate: d("1")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Currencies.Create(ctx, tt.input)
			if tt.validation && !models.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.validation && !models.IsDomain(err) {
				t.Errorf("expected domain error, got %v", err)
			}
		})
	}

	if n := countBases(t, l); n != 1 {
		t.Errorf("expected exactly one base currency, got %d", n)
	}
}

func TestUpdateCurrency(t *testing.T) {
	l, rec := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, _ := seedCurrencies(t, l)

	t.Run("cannot unset base", func(t *testing.T) {
		no := false
		if _, err := l.Currencies.Update(ctx, usd.ID, UpdateCurrencyInput{IsBase: &no}); !models.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("cannot set non-1 rate on base", func(t *testing.T) {
		if _, err := l.Currencies.Update(ctx, usd.ID, UpdateCurrencyInput{Rate: dp("1.1")}); !models.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("rate update on non-base", func(t *testing.T) {
		got, err := l.Currencies.Update(ctx, eur.ID, UpdateCurrencyInput{Rate: dp("0.92")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		assertDecimal(t, "rate", got.Rate, "0.92")
	})

	t.Run("promote through update", func(t *testing.T) {
		yes := true
		got, err := l.Currencies.Update(ctx, eur.ID, UpdateCurrencyInput{IsBase: &yes, Symbol: strPtr("EUR€")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !got.IsBase || got.Symbol != "EUR€" {
			t.Errorf("expected promoted EUR with new symbol, got %+v", got)
		}
		if rec.rebases != 1 {
			t.Errorf("rebases = %d, want 1", rec.rebases)
		}
		if n := countBases(t, l); n != 1 {
			t.Errorf("expected exactly one base currency, got %d", n)
		}
	})
}

func strPtr(s string) *string { return &s }

func TestSetBasePreservesCrossRates(t *testing.T) {
	l, rec := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, jpy := seedCurrencies(t, l)

	type pair struct{ from, to string }
	ids := []string{usd.ID, eur.ID, jpy.ID}
	before := make(map[pair]decimal.Decimal)
	for _, from := range ids {
		for _, to := range ids {
			got, _, err := l.Currencies.Convert(ctx, d("100"), from, to)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			before[pair{from, to}] = got
		}
	}

	base, err := l.Currencies.SetBase(ctx, eur.ID)
	if err != nil {
		t.Fatalf("SetBase failed: %v", err)
	}
	if base.ID != eur.ID || !base.IsBase {
		t.Fatalf("unexpected base %+v", base)
	}
	if n := countBases(t, l); n != 1 {
		t.Errorf("expected exactly one base currency, got %d", n)
	}

	for p, want := range before {
		got, _, err := l.Currencies.Convert(ctx, d("100"), p.from, p.to)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if !got.Equal(want) {
			t.Errorf("convert %s->%s = %s after rebase, want %s", p.from, p.to, got, want)
		}
	}

	oldBase, err := l.Currencies.Get(ctx, usd.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if oldBase.IsBase {
		t.Error("previous base still flagged")
	}
	if got := oldBase.Rate.Round(6); !got.Equal(d("1.111111")) {
		t.Errorf("USD rate = %s, want 1/0.9", oldBase.Rate)
	}

	t.Run("promoting current base is a no-op", func(t *testing.T) {
		if _, err := l.Currencies.SetBase(ctx, eur.ID); err != nil {
			t.Fatalf("SetBase failed: %v", err)
		}
		if rec.rebases != 1 {
			t.Errorf("rebases = %d, want 1", rec.rebases)
		}
	})

	t.Run("unknown currency", func(t *testing.T) {
		if _, err := l.Currencies.SetBase(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeletionGuards(t *testing.T) {
	l, _ := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, jpy := seedCurrencies(t, l)

	checking := mustAccount(t, l, "Checking", usd.ID, "1000")
	mustAccount(t, l, "Savings", eur.ID, "0")
	loan := mustDebt(t, l, "Loan", usd.ID, models.DebtIOwe, "500")
	if _, err := l.Debts.Pay(ctx, PayDebtInput{DebtID: loan.ID, FromAccountID: checking.ID, Amount: d("100")}); err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	tests := []struct {
		name string
		del  func() error
	}{
		{"base currency", func() error { return l.Currencies.Delete(ctx, usd.ID) }},
		{"currency in use", func() error { return l.Currencies.Delete(ctx, eur.ID) }},
		{"account with transactions", func() error { return l.Accounts.Delete(ctx, checking.ID) }},
		{"debt with payment history", func() error { return l.Debts.Delete(ctx, loan.ID) }},
		{"debt through account delete", func() error { return l.Accounts.Delete(ctx, loan.ID) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.del(); !models.IsDomain(err) {
				t.Errorf("expected domain error, got %v", err)
			}
		})
	}

	currencies, _ := l.Currencies.List(ctx)
	if len(currencies) != 3 {
		t.Errorf("expected 3 currencies after rejected deletes, got %d", len(currencies))
	}
	accounts, _ := l.Accounts.List(ctx, storage.AccountFilter{IncludeInactive: true})
	if len(accounts) != 3 {
		t.Errorf("expected 3 accounts after rejected deletes, got %d", len(accounts))
	}

	t.Run("unused currency can be deleted", func(t *testing.T) {
		if err := l.Currencies.Delete(ctx, jpy.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	})

	t.Run("currency of a removed account stays in use", func(t *testing.T) {
		gbp, err := l.Currencies.Create(ctx, CreateCurrencyInput{Code: "GBP", Rate: d("1.25")})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		wallet := mustAccount(t, l, "Wallet", gbp.ID, "0")
		if err := l.Accounts.Delete(ctx, wallet.ID); err != nil {
			t.Fatalf("Delete account failed: %v", err)
		}
		if err := l.Currencies.Delete(ctx, gbp.ID); !models.IsDomain(err) {
			t.Errorf("expected domain error, got %v", err)
		}
	})

	t.Run("last currency", func(t *testing.T) {
		l2, _ := setupTestLedger(t)
		only, err := l2.Currencies.Create(ctx, CreateCurrencyInput{Code: "USD"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := l2.Currencies.Delete(ctx, only.ID); !models.IsDomain(err) {
			t.Errorf("expected domain error, got %v", err)
		}
	})
}

func TestCarLoan(t *testing.T) {
	l, rec := setupTestLedger(t)
	ctx := context.Background()
	usd, _, _ := seedCurrencies(t, l)
	checking := mustAccount(t, l, "Checking", usd.ID, "1500")
	loan := mustDebt(t, l, "Car Loan", usd.ID, models.DebtIOwe, "1000")

	pay := func() error {
		_, err := l.Debts.Pay(ctx, PayDebtInput{DebtID: loan.ID, FromAccountID: checking.ID, Amount: d("200")})
		return err
	}

	if err := pay(); err != nil {
		t.Fatalf("Pay failed: %v", err)
	}
	summary, err := l.Debts.Get(ctx, loan.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	assertDecimal(t, "remaining", summary.Remaining, "800")
	assertDecimal(t, "progress", summary.Progress, "0.2")
	if summary.IsPaidOff() {
		t.Error("debt should not be paid off after one payment")
	}

	for i := 0; i < 4; i++ {
		if err := pay(); err != nil {
			t.Fatalf("Pay %d failed: %v", i+2, err)
		}
	}
	summary, _ = l.Debts.Get(ctx, loan.ID)
	assertDecimal(t, "remaining", summary.Remaining, "0")
	assertDecimal(t, "progress", summary.Progress, "1")
	if !summary.IsPaidOff() {
		t.Error("debt should be paid off")
	}
	if rec.paidOff != 1 || rec.posted[models.TxDebtPayment] != 5 {
		t.Errorf("recorder = %+v", rec)
	}

	err = pay()
	if !models.IsDomain(err) || err.Error() != "debt is already paid off" {
		t.Errorf("expected 'debt is already paid off', got %v", err)
	}

	balance, err := l.Accounts.Balance(ctx, checking.ID)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	assertDecimal(t, "checking", balance.Balance, "500")

	t.Run("reopen allows another payment", func(t *testing.T) {
		reopened, err := l.Debts.Reopen(ctx, loan.ID)
		if err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		if reopened.Debt.IsPaidOff {
			t.Error("reopened debt still paid off")
		}
		if _, err := l.Debts.Reopen(ctx, loan.ID); !models.IsDomain(err) {
			t.Errorf("second reopen: expected domain error, got %v", err)
		}
		if err := pay(); err != nil {
			t.Fatalf("Pay after reopen failed: %v", err)
		}
		summary, _ := l.Debts.Get(ctx, loan.ID)
		if !summary.IsPaidOff() {
			t.Error("overpaid debt should be paid off again")
		}
		assertDecimal(t, "paid", summary.Paid, "1200")
		assertDecimal(t, "remaining", summary.Remaining, "0")
	})
}

func TestDebtRejections(t *testing.T) {
	l, _ := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, _ := seedCurrencies(t, l)
	checking := mustAccount(t, l, "Checking", usd.ID, "1000")
	loan := mustDebt(t, l, "Loan", usd.ID, models.DebtIOwe, "500")
	lent := mustDebt(t, l, "Lent to Bob", eur.ID, models.DebtOwedToMe, "100")

	tests := []struct {
		name string
		in   PostInput
	}{
		{"payment to regular account", PostInput{Type: models.TxDebtPayment, AccountID: checking.ID, ToAccountID: checking.ID, Amount: d("10")}},
		{"payment to owed_to_me", PostInput{Type: models.TxDebtPayment, AccountID: checking.ID, ToAccountID: lent.ID, Amount: d("10")}},
		{"collection from i_owe", PostInput{Type: models.TxDebtCollection, AccountID: checking.ID, ToAccountID: loan.ID, ToAmount: dp("10")}},
		{"debt as source", PostInput{Type: models.TxDebtPayment, AccountID: lent.ID, ToAccountID: loan.ID, Amount: d("10")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Transactions.Post(ctx, tt.in); !models.IsDomain(err) {
				t.Errorf("expected domain error, got %v", err)
			}
		})
	}

	txs, _ := l.Transactions.List(ctx, storage.TransactionFilter{})
	if len(txs) != 0 {
		t.Errorf("rejected postings left %d transactions", len(txs))
	}
}

func TestDebtCollectionAcrossCurrencies(t *testing.T) {
	l, _ := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, _ := seedCurrencies(t, l)
	checking := mustAccount(t, l, "Checking", usd.ID, "0")
	lent := mustDebt(t, l, "Lent to Bob", eur.ID, models.DebtOwedToMe, "100")

	tx, err := l.Debts.Collect(ctx, CollectDebtInput{DebtID: lent.ID, ToAccountID: checking.ID, DebtAmount: d("100")})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	assertDecimal(t, "amount", tx.Amount, "90")
	assertDecimal(t, "toAmount", *tx.ToAmount, "100")

	balance, _ := l.Accounts.Balance(ctx, checking.ID)
	assertDecimal(t, "checking", balance.Balance, "90")

	summary, _ := l.Debts.Get(ctx, lent.ID)
	if !summary.IsPaidOff() {
		t.Error("collected debt should be paid off")
	}
}

func TestTransactionLifecycle(t *testing.T) {
	l, rec := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, _ := seedCurrencies(t, l)
	checking := mustAccount(t, l, "Checking", usd.ID, "1000")
	savings := mustAccount(t, l, "Savings", eur.ID, "0")
	loan := mustDebt(t, l, "Loan", usd.ID, models.DebtIOwe, "300")
	food, err := l.Accounts.CreateCategory(ctx, "Food", models.CategoryExpense)
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	t.Run("expense defaults date and normalizes tags", func(t *testing.T) {
		tx, err := l.Transactions.Post(ctx, PostInput{
			Type: models.TxExpense, AccountID: checking.ID, Amount: d("25.50"),
			CategoryID: food.ID, Tags: []string{" Groceries", "groceries", "weekly"},
		})
		if err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		if !tx.Date.Equal(day(2025, 3, 15)) {
			t.Errorf("date = %v, want 2025-03-15", tx.Date)
		}
		if len(tx.Tags) != 2 || tx.Tags[0] != "groceries" || tx.Tags[1] != "weekly" {
			t.Errorf("tags = %v", tx.Tags)
		}
		if tx.ExchangeRate != nil || tx.ToAmount != nil {
			t.Error("expense should carry no counter side")
		}
	})

	t.Run("category kind must match", func(t *testing.T) {
		_, err := l.Transactions.Post(ctx, PostInput{Type: models.TxIncome, AccountID: checking.ID, Amount: d("1"), CategoryID: food.ID})
		if !models.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	var transfer *models.Transaction
	t.Run("cross-currency transfer derives toAmount", func(t *testing.T) {
		transfer, err = l.Transactions.Post(ctx, PostInput{
			Type: models.TxTransfer, AccountID: checking.ID, ToAccountID: savings.ID,
			Amount: d("100"), Date: day(2025, 3, 10),
		})
		if err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		assertDecimal(t, "toAmount", *transfer.ToAmount, "111.11")
		assertDecimal(t, "exchangeRate", *transfer.ExchangeRate, "1.1111")

		balance, _ := l.Accounts.Balance(ctx, savings.ID)
		assertDecimal(t, "savings", balance.Balance, "111.11")
		assertDecimal(t, "savings in base", balance.BalanceInBase, "100")
	})

	t.Run("update cannot change type", func(t *testing.T) {
		_, err := l.Transactions.Update(ctx, transfer.ID, PostInput{Type: models.TxExpense, AccountID: checking.ID, Amount: d("1")})
		if !models.IsDomain(err) {
			t.Errorf("expected domain error, got %v", err)
		}
	})

	t.Run("update replaces fields under the same id", func(t *testing.T) {
		updated, err := l.Transactions.Update(ctx, transfer.ID, PostInput{
			AccountID: checking.ID, ToAccountID: savings.ID, Amount: d("50"), ToAmount: dp("45"),
			Date: day(2025, 3, 11), Tags: []string{"rebalance"},
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.ID != transfer.ID || updated.CreatedAt != transfer.CreatedAt {
			t.Errorf("identity changed: %+v", updated)
		}
		got, _ := l.Transactions.Get(ctx, transfer.ID)
		assertDecimal(t, "toAmount", *got.ToAmount, "45")
		if len(got.Tags) != 1 || got.Tags[0] != "rebalance" {
			t.Errorf("tags = %v", got.Tags)
		}
		balance, _ := l.Accounts.Balance(ctx, checking.ID)
		assertDecimal(t, "checking", balance.Balance, "924.5")
	})

	var payment *models.Transaction
	t.Run("payment that settles the debt", func(t *testing.T) {
		payment, err = l.Debts.Pay(ctx, PayDebtInput{DebtID: loan.ID, FromAccountID: checking.ID, Amount: d("300")})
		if err != nil {
			t.Fatalf("Pay failed: %v", err)
		}
		summary, _ := l.Debts.Get(ctx, loan.ID)
		if !summary.IsPaidOff() {
			t.Fatal("expected loan to be paid off")
		}
	})

	t.Run("shrinking the payment reopens the debt", func(t *testing.T) {
		if _, err := l.Transactions.Update(ctx, payment.ID, PostInput{
			AccountID: checking.ID, ToAccountID: loan.ID, Amount: d("100"),
		}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		summary, _ := l.Debts.Get(ctx, loan.ID)
		if summary.IsPaidOff() {
			t.Error("loan should be open after the payment shrank")
		}
		assertDecimal(t, "remaining", summary.Remaining, "200")
	})

	t.Run("lowering the target settles the debt", func(t *testing.T) {
		account, err := l.Accounts.Update(ctx, loan.ID, UpdateAccountInput{TargetAmount: dp("100")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !account.Debt.IsPaidOff {
			t.Error("loan should be paid off after lowering target")
		}
		if rec.paidOff != 2 {
			t.Errorf("paidOff events = %d, want 2", rec.paidOff)
		}
	})

	t.Run("deleting the payment reopens the debt", func(t *testing.T) {
		if err := l.Transactions.Delete(ctx, payment.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		summary, _ := l.Debts.Get(ctx, loan.ID)
		if summary.IsPaidOff() {
			t.Error("loan should be open after deleting its only payment")
		}
		if err := l.Debts.Delete(ctx, loan.ID); err != nil {
			t.Errorf("debt without history should be deletable: %v", err)
		}
	})

	t.Run("payments of an overpaid debt stay editable", func(t *testing.T) {
		card := mustDebt(t, l, "Card", usd.ID, models.DebtIOwe, "1000")
		first, err := l.Debts.Pay(ctx, PayDebtInput{DebtID: card.ID, FromAccountID: checking.ID, Amount: d("100"), Date: day(2025, 3, 20)})
		if err != nil {
			t.Fatalf("Pay failed: %v", err)
		}
		second, err := l.Debts.Pay(ctx, PayDebtInput{DebtID: card.ID, FromAccountID: checking.ID, Amount: d("1000"), Date: day(2025, 3, 20)})
		if err != nil {
			t.Fatalf("Pay failed: %v", err)
		}

		updated, err := l.Transactions.Update(ctx, first.ID, PostInput{
			AccountID: checking.ID, ToAccountID: card.ID, Amount: d("150"),
			Date: day(2025, 3, 20), Description: "corrected",
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Description != "corrected" {
			t.Errorf("description = %q", updated.Description)
		}
		summary, _ := l.Debts.Get(ctx, card.ID)
		if !summary.IsPaidOff() {
			t.Error("card should stay paid off")
		}
		assertDecimal(t, "remaining", summary.Remaining, "0")

		// the edited payment keeps its place ahead of the later one
		payments, err := l.Transactions.List(ctx, storage.TransactionFilter{ToAccountID: card.ID})
		if err != nil || len(payments) != 2 {
			t.Fatalf("List = %d, %v", len(payments), err)
		}
		if payments[0].ID != first.ID || payments[1].ID != second.ID {
			t.Errorf("payment order changed: %s, %s", payments[0].ID, payments[1].ID)
		}

		if _, err := l.Debts.Pay(ctx, PayDebtInput{DebtID: card.ID, FromAccountID: checking.ID, Amount: d("1")}); !models.IsDomain(err) {
			t.Errorf("new payment on a settled debt: expected domain error, got %v", err)
		}
	})

	t.Run("list filters", func(t *testing.T) {
		byTag, err := l.Transactions.List(ctx, storage.TransactionFilter{Tag: "weekly"})
		if err != nil || len(byTag) != 1 {
			t.Errorf("tag filter = %d, %v", len(byTag), err)
		}
		byAccount, _ := l.Transactions.List(ctx, storage.TransactionFilter{AccountIDs: []string{savings.ID}})
		if len(byAccount) != 1 || byAccount[0].Type != models.TxTransfer {
			t.Errorf("account filter returned %d", len(byAccount))
		}
		if _, err := l.Transactions.List(ctx, storage.TransactionFilter{From: day(2025, 3, 2), To: day(2025, 3, 1)}); !models.IsValidation(err) {
			t.Errorf("expected validation error for inverted range, got %v", err)
		}
	})
}

func TestUpdateAccount(t *testing.T) {
	l, _ := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, _ := seedCurrencies(t, l)
	checking := mustAccount(t, l, "Checking", usd.ID, "10")

	t.Run("currency change without history", func(t *testing.T) {
		got, err := l.Accounts.Update(ctx, checking.ID, UpdateAccountInput{CurrencyID: &eur.ID, Name: strPtr("Giro")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got.CurrencyID != eur.ID || got.Name != "Giro" {
			t.Errorf("unexpected account %+v", got)
		}
	})

	t.Run("currency change with history", func(t *testing.T) {
		if _, err := l.Transactions.Post(ctx, PostInput{Type: models.TxIncome, AccountID: checking.ID, Amount: d("5")}); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		if _, err := l.Accounts.Update(ctx, checking.ID, UpdateAccountInput{CurrencyID: &usd.ID}); !models.IsDomain(err) {
			t.Errorf("expected domain error, got %v", err)
		}
	})

	t.Run("debt fields on regular account", func(t *testing.T) {
		if _, err := l.Accounts.Update(ctx, checking.ID, UpdateAccountInput{TargetAmount: dp("1")}); !models.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestNetWorth(t *testing.T) {
	ctx := context.Background()

	t.Run("no base currency", func(t *testing.T) {
		l, _ := setupTestLedger(t)
		nw, err := l.Accounts.NetWorth(ctx)
		if err != nil {
			t.Fatalf("NetWorth failed: %v", err)
		}
		if nw.Base != nil || !nw.Total.IsZero() {
			t.Errorf("expected zero summary, got %+v", nw)
		}
	})

	t.Run("accounts and debts in base", func(t *testing.T) {
		l, _ := setupTestLedger(t)
		usd, eur, _ := seedCurrencies(t, l)
		checking := mustAccount(t, l, "Checking", usd.ID, "1000")
		mustAccount(t, l, "Savings", eur.ID, "100")
		loan := mustDebt(t, l, "Loan", usd.ID, models.DebtIOwe, "300")
		mustDebt(t, l, "Lent", eur.ID, models.DebtOwedToMe, "100")
		if _, err := l.Debts.Pay(ctx, PayDebtInput{DebtID: loan.ID, FromAccountID: checking.ID, Amount: d("100")}); err != nil {
			t.Fatalf("Pay failed: %v", err)
		}

		nw, err := l.Accounts.NetWorth(ctx)
		if err != nil {
			t.Fatalf("NetWorth failed: %v", err)
		}
		assertDecimal(t, "accounts", nw.AccountsTotal, "990")
		assertDecimal(t, "debts", nw.DebtsImpact, "-110")
		assertDecimal(t, "total", nw.Total, "880")
	})
}

func TestBalanceHistoryMatchesReplay(t *testing.T) {
	l, _ := setupTestLedger(t)
	ctx := context.Background()
	usd, eur, _ := seedCurrencies(t, l)
	checking := mustAccount(t, l, "Checking", usd.ID, "100")
	savings := mustAccount(t, l, "Savings", eur.ID, "0")

	post := func(in PostInput) {
		t.Helper()
		if _, err := l.Transactions.Post(ctx, in); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}
	post(PostInput{Type: models.TxIncome, AccountID: checking.ID, Amount: d("50"), Date: day(2025, 2, 28)})
	post(PostInput{Type: models.TxExpense, AccountID: checking.ID, Amount: d("30"), Date: day(2025, 3, 2)})
	post(PostInput{Type: models.TxTransfer, AccountID: checking.ID, ToAccountID: savings.ID, Amount: d("20"), ToAmount: dp("20"), Date: day(2025, 3, 3)})

	history, err := l.Accounts.BalanceHistory(ctx, nil, day(2025, 3, 1), day(2025, 3, 4))
	if err != nil {
		t.Fatalf("BalanceHistory failed: %v", err)
	}
	if len(history.Dates) != 4 || history.Dates[0] != "2025-03-01" || history.Currency != "$" {
		t.Fatalf("unexpected history frame %+v", history)
	}
	if len(history.Series) != 3 {
		t.Fatalf("expected 2 accounts plus total, got %d series", len(history.Series))
	}

	for _, acc := range []*models.Account{checking, savings} {
		balance, err := l.Accounts.Balance(ctx, acc.ID)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		for _, s := range history.Series {
			if s.Name != acc.Name {
				continue
			}
			last := s.Data[len(s.Data)-1]
			if want := balance.BalanceInBase.InexactFloat64(); last != want {
				t.Errorf("%s: history ends at %v, replay gives %v", acc.Name, last, want)
			}
		}
	}

	total := history.Series[2]
	if want := []float64{150, 120, 118, 118}; total.Data[0] != want[0] || total.Data[1] != want[1] || total.Data[2] != want[2] || total.Data[3] != want[3] {
		t.Errorf("total = %v, want %v", total.Data, want)
	}

	if _, err := l.Accounts.BalanceHistory(ctx, nil, day(2025, 3, 4), day(2025, 3, 1)); !models.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	t.Run("range limit", func(t *testing.T) {
		start := day(2015, 1, 1)
		h, err := l.Accounts.BalanceHistory(ctx, nil, start, start.AddDate(0, 0, MaxHistoryDays-1))
		if err != nil {
			t.Fatalf("BalanceHistory at the limit failed: %v", err)
		}
		if len(h.Dates) != MaxHistoryDays {
			t.Errorf("got %d dates, want %d", len(h.Dates), MaxHistoryDays)
		}
		if _, err := l.Accounts.BalanceHistory(ctx, nil, start, start.AddDate(0, 0, MaxHistoryDays)); !models.IsValidation(err) {
			t.Errorf("expected validation error past the limit, got %v", err)
		}
		if _, err := l.Accounts.BalanceHistory(ctx, nil, day(1700, 1, 1), day(2100, 1, 1)); !models.IsValidation(err) {
			t.Errorf("expected validation error for a multi-century range, got %v", err)
		}
	})
}
