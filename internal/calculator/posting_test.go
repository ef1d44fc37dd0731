package calculator

import (
	"testing"

	"github.com/mmynk/fintrack/internal/models"
)

func TestApplyPostingRules_DebtDirections(t *testing.T) {
	checkingEUR := Side{Account: regular("checking", eur, "0"), Currency: eur}
	loanUSD := Side{Account: debt("loan", usd, models.DebtIOwe, "1000"), Currency: usd}
	lentUSD := Side{Account: debt("lent", usd, models.DebtOwedToMe, "1000"), Currency: usd}

	t.Run("debt_payment converts payer amount into debt currency", func(t *testing.T) {
		p, err := ApplyPostingRules(PostingRequest{
			Type:   models.TxDebtPayment,
			From:   checkingEUR,
			To:     &loanUSD,
			Amount: d("100"),
		})
		if err != nil {
			t.Fatalf("ApplyPostingRules failed: %v", err)
		}
		assertDecimal(t, "amount (payer EUR)", p.Amount, d("100"))
		assertDecimal(t, "toAmount (debt USD)", *p.ToAmount, d("90"))
		assertDecimal(t, "exchangeRate", *p.ExchangeRate, d("0.9"))
	})

	t.Run("debt_collection converts debt amount into receiver currency", func(t *testing.T) {
		p, err := ApplyPostingRules(PostingRequest{
			Type:     models.TxDebtCollection,
			From:     checkingEUR,
			To:       &lentUSD,
			Amount:   d("999"), // ignored
			ToAmount: dp("90"),
		})
		if err != nil {
			t.Fatalf("ApplyPostingRules failed: %v", err)
		}
		assertDecimal(t, "amount (receiver EUR)", p.Amount, d("100"))
		assertDecimal(t, "toAmount (debt USD)", *p.ToAmount, d("90"))
		assertDecimal(t, "exchangeRate", *p.ExchangeRate, d("0.9"))
	})
}

func TestApplyPostingRules_Transfer(t *testing.T) {
	a := Side{Account: regular("a", usd, "0"), Currency: usd}
	b := Side{Account: regular("b", usd, "0"), Currency: usd}
	e := Side{Account: regular("e", eur, "0"), Currency: eur}

	tests := []struct {
		name     string
		to       Side
		toAmount string
		want     string
		wantRate string
	}{
		{name: "same currency copies amount", to: b, want: "100", wantRate: "1"},
		{name: "different currency converts", to: e, want: "111.11", wantRate: "1.1111"},
		{name: "explicit counter amount wins", to: e, toAmount: "110", want: "110", wantRate: "1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to := tt.to
			req := PostingRequest{Type: models.TxTransfer, From: a, To: &to, Amount: d("100")}
			if tt.toAmount != "" {
				req.ToAmount = dp(tt.toAmount)
			}
			p, err := ApplyPostingRules(req)
			if err != nil {
				t.Fatalf("ApplyPostingRules failed: %v", err)
			}
			assertDecimal(t, "toAmount", *p.ToAmount, d(tt.want))
			assertDecimal(t, "exchangeRate", *p.ExchangeRate, d(tt.wantRate))
		})
	}
}

func TestApplyPostingRules_Rejections(t *testing.T) {
	checking := Side{Account: regular("checking", usd, "0"), Currency: usd}
	savings := Side{Account: regular("savings", usd, "0"), Currency: usd}
	loan := Side{Account: debt("loan", usd, models.DebtIOwe, "1000"), Currency: usd}
	lent := Side{Account: debt("lent", usd, models.DebtOwedToMe, "1000"), Currency: usd}
	paid := Side{Account: debt("paid", usd, models.DebtIOwe, "1000"), Currency: usd}
	paid.Account.Debt.IsPaidOff = true
	salary := &models.Category{ID: "c1", Name: "Salary", Kind: models.CategoryIncome}

	tests := []struct {
		name       string
		req        PostingRequest
		wantDomain bool
	}{
		{
			name:       "payment to non-debt",
			req:        PostingRequest{Type: models.TxDebtPayment, From: checking, To: &savings, Amount: d("1")},
			wantDomain: true,
		},
		{
			name:       "payment to owed_to_me debt",
			req:        PostingRequest{Type: models.TxDebtPayment, From: checking, To: &lent, Amount: d("1")},
			wantDomain: true,
		},
		{
			name:       "collection from i_owe debt",
			req:        PostingRequest{Type: models.TxDebtCollection, From: checking, To: &loan, ToAmount: dp("1")},
			wantDomain: true,
		},
		{
			name:       "payment to paid off debt",
			req:        PostingRequest{Type: models.TxDebtPayment, From: checking, To: &paid, Amount: d("1")},
			wantDomain: true,
		},
		{
			name:       "debt as payment source",
			req:        PostingRequest{Type: models.TxDebtPayment, From: lent, To: &loan, Amount: d("1")},
			wantDomain: true,
		},
		{
			name: "collection without debt amount",
			req:  PostingRequest{Type: models.TxDebtCollection, From: checking, To: &lent},
		},
		{
			name: "transfer without counter account",
			req:  PostingRequest{Type: models.TxTransfer, From: checking, Amount: d("1")},
		},
		{
			name: "transfer to itself",
			req:  PostingRequest{Type: models.TxTransfer, From: checking, To: &checking, Amount: d("1")},
		},
		{
			name: "income with counter account",
			req:  PostingRequest{Type: models.TxIncome, From: checking, To: &savings, Amount: d("1")},
		},
		{
			name: "negative expense",
			req:  PostingRequest{Type: models.TxExpense, From: checking, Amount: d("-1")},
		},
		{
			name: "expense with income category",
			req:  PostingRequest{Type: models.TxExpense, From: checking, Amount: d("1"), Category: salary},
		},
		{
			name: "transfer with category",
			req:  PostingRequest{Type: models.TxTransfer, From: checking, To: &savings, Amount: d("1"), Category: salary},
		},
		{
			name: "unknown type",
			req:  PostingRequest{Type: "refund", From: checking, Amount: d("1")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyPostingRules(tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantDomain && !models.IsDomain(err) {
				t.Errorf("error %q is not a domain error", err)
			}
			if !tt.wantDomain && !models.IsValidation(err) {
				t.Errorf("error %q is not a validation error", err)
			}
		})
	}
}

func TestApplyPostingRules_IncomeExpense(t *testing.T) {
	checking := Side{Account: regular("checking", usd, "0"), Currency: usd}
	p, err := ApplyPostingRules(PostingRequest{
		Type:     models.TxIncome,
		From:     checking,
		Amount:   d("2500"),
		Category: &models.Category{Name: "Salary", Kind: models.CategoryIncome},
	})
	if err != nil {
		t.Fatalf("ApplyPostingRules failed: %v", err)
	}
	if p.ToAmount != nil || p.ExchangeRate != nil {
		t.Errorf("income should carry no counter amount, got %v / %v", p.ToAmount, p.ExchangeRate)
	}
	assertDecimal(t, "amount", p.Amount, d("2500"))
}
