package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// Side is one account of a posting together with its currency.
type Side struct {
	Account  models.Account
	Currency models.Currency
}

// PostingRequest is a transaction as requested by a caller, before the
// posting rules derive the stored amounts.
type PostingRequest struct {
	Type models.TransactionType

	// From is the primary side (accountId).
	From Side

	// To is the counter side. Required for transfer and debt kinds.
	To *Side

	// Amount is the primary-side amount. Ignored for debt_collection,
	// whose primary amount is derived from ToAmount.
	Amount decimal.Decimal

	// ToAmount is optional for transfers and carries the debt-side amount
	// for debt_collection. Payments derive it.
	ToAmount *decimal.Decimal

	// Category is the resolved category, if any.
	Category *models.Category
}

// Posting holds the amounts to persist for a transaction.
type Posting struct {
	Amount       decimal.Decimal
	ToAmount     *decimal.Decimal
	ExchangeRate *decimal.Decimal
}

type postingRule func(req PostingRequest) (Posting, error)

// postingRules is keyed by kind; a kind never changes after creation.
var postingRules = map[models.TransactionType]postingRule{
	models.TxIncome:         postSingle(models.CategoryIncome),
	models.TxExpense:        postSingle(models.CategoryExpense),
	models.TxTransfer:       postTransfer,
	models.TxDebtPayment:    postDebtPayment,
	models.TxDebtCollection: postDebtCollection,
}

// ApplyPostingRules validates req against the rules of its kind and returns
// the amounts to store. The exchange rate is always recomputed.
func ApplyPostingRules(req PostingRequest) (Posting, error) {
	rule, ok := postingRules[req.Type]
	if !ok {
		return Posting{}, models.Invalid("type", "unknown transaction type %q", req.Type)
	}
	p, err := rule(req)
	if err != nil {
		return Posting{}, err
	}
	p.ExchangeRate = ExchangeRate(p.Amount, p.ToAmount)
	return p, nil
}

func postSingle(kind models.CategoryKind) postingRule {
	return func(req PostingRequest) (Posting, error) {
		if req.To != nil {
			return Posting{}, models.Invalid("to_account_id", "not allowed for %s", req.Type)
		}
		if req.ToAmount != nil {
			return Posting{}, models.Invalid("to_amount", "not allowed for %s", req.Type)
		}
		if err := nonNegative("amount", req.Amount); err != nil {
			return Posting{}, err
		}
		if req.Category != nil && req.Category.Kind != kind {
			return Posting{}, models.Invalid("category_id", "category %q is not an %s category", req.Category.Name, kind)
		}
		return Posting{Amount: req.Amount}, nil
	}
}

func postTransfer(req PostingRequest) (Posting, error) {
	if err := counterSide(req); err != nil {
		return Posting{}, err
	}
	if req.To.Account.ID == req.From.Account.ID {
		return Posting{}, models.Invalid("to_account_id", "cannot transfer to the same account")
	}
	if err := nonNegative("amount", req.Amount); err != nil {
		return Posting{}, err
	}

	var toAmount decimal.Decimal
	switch {
	case req.ToAmount != nil:
		if err := nonNegative("to_amount", *req.ToAmount); err != nil {
			return Posting{}, err
		}
		toAmount = *req.ToAmount
	case req.From.Currency.ID != req.To.Currency.ID:
		toAmount = ConvertRounded(req.Amount, req.From.Currency, req.To.Currency)
	default:
		toAmount = req.Amount
	}
	return Posting{Amount: req.Amount, ToAmount: &toAmount}, nil
}

// postDebtPayment: the payer's amount is given, the debt side is converted.
func postDebtPayment(req PostingRequest) (Posting, error) {
	if err := counterSide(req); err != nil {
		return Posting{}, err
	}
	if err := checkDebtTarget(req, models.DebtIOwe); err != nil {
		return Posting{}, err
	}
	if err := nonNegative("amount", req.Amount); err != nil {
		return Posting{}, err
	}
	toAmount := ConvertRounded(req.Amount, req.From.Currency, req.To.Currency)
	return Posting{Amount: req.Amount, ToAmount: &toAmount}, nil
}

// postDebtCollection: the debt-side amount is given, the receiver's is converted.
func postDebtCollection(req PostingRequest) (Posting, error) {
	if err := counterSide(req); err != nil {
		return Posting{}, err
	}
	if err := checkDebtTarget(req, models.DebtOwedToMe); err != nil {
		return Posting{}, err
	}
	if req.ToAmount == nil {
		return Posting{}, models.Invalid("to_amount", "debt amount is required for debt_collection")
	}
	debtAmount := *req.ToAmount
	if err := nonNegative("to_amount", debtAmount); err != nil {
		return Posting{}, err
	}
	amount := ConvertRounded(debtAmount, req.To.Currency, req.From.Currency)
	return Posting{Amount: amount, ToAmount: &debtAmount}, nil
}

func counterSide(req PostingRequest) error {
	if req.To == nil {
		return models.Invalid("to_account_id", "required for %s", req.Type)
	}
	if req.Category != nil {
		return models.Invalid("category_id", "not allowed for %s", req.Type)
	}
	return nil
}

func checkDebtTarget(req PostingRequest, want models.DebtType) error {
	if req.From.Account.IsDebt() {
		return models.Rejected("cannot use debt account %q as payment source", req.From.Account.Name)
	}
	debt := req.To.Account
	if !debt.IsDebt() {
		return models.Rejected("account %q is not a debt", debt.Name)
	}
	if debt.Debt.DebtType != want {
		return models.Rejected("%s requires a %s debt, %q is %s", req.Type, want, debt.Name, debt.Debt.DebtType)
	}
	if debt.Debt.IsPaidOff {
		return models.Rejected("debt is already paid off")
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return models.Invalid(field, "must be >= 0, got %s", v)
	}
	return nil
}
