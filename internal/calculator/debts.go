package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// DebtStatus is the payoff state of a debt derived from its payment history.
type DebtStatus struct {
	// Paid is the sum of ToAmount over payments and collections, in the debt's currency.
	Paid decimal.Decimal

	// Remaining is TargetAmount - Paid, clamped at zero.
	Remaining decimal.Decimal

	// Progress is Paid / TargetAmount, clamped to [0, 1].
	Progress decimal.Decimal

	// Settled is true when the unclamped remaining amount is <= 0.
	Settled bool
}

// PaidTowardsDebt sums the debt-side amounts of every payment or collection
// pointing at debtID.
func PaidTowardsDebt(debtID string, txs []models.Transaction) decimal.Decimal {
	paid := decimal.Zero
	for _, tx := range txs {
		if tx.ToAccountID != debtID || !tx.Type.IsDebtKind() || tx.ToAmount == nil {
			continue
		}
		paid = paid.Add(*tx.ToAmount)
	}
	return paid
}

// CalculateDebtStatus derives the payoff state of debt from txs.
// It returns the zero status for regular accounts.
func CalculateDebtStatus(debt models.Account, txs []models.Transaction) DebtStatus {
	if !debt.IsDebt() {
		return DebtStatus{}
	}
	one := decimal.NewFromInt(1)
	target := debt.Debt.TargetAmount
	paid := PaidTowardsDebt(debt.ID, txs)
	remaining := target.Sub(paid)

	status := DebtStatus{
		Paid:      paid,
		Remaining: decimal.Max(remaining, decimal.Zero),
		Settled:   !remaining.IsPositive(),
	}
	switch {
	case target.IsPositive():
		status.Progress = decimal.Min(decimal.Max(paid.Div(target), decimal.Zero), one)
	case status.Settled:
		status.Progress = one
	default:
		status.Progress = decimal.Zero
	}
	return status
}

// CapitalImpact is -1 for debts the household owes and +1 for debts owed to it.
func CapitalImpact(t models.DebtType) int64 {
	if t == models.DebtIOwe {
		return -1
	}
	return 1
}

// DebtPosition is a debt with its currency and remaining amount.
type DebtPosition struct {
	Account   models.Account
	Currency  models.Currency
	Remaining decimal.Decimal
}

// DebtsImpact sums CapitalImpact * convertToBase(remaining) over debts.
func DebtsImpact(debts []DebtPosition, base *models.Currency) decimal.Decimal {
	impact := decimal.Zero
	for _, d := range debts {
		if !d.Account.IsDebt() {
			continue
		}
		sign := decimal.NewFromInt(CapitalImpact(d.Account.Debt.DebtType))
		impact = impact.Add(sign.Mul(ConvertToBase(d.Remaining, d.Currency, base)))
	}
	return impact
}
