package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// ExchangeRatePlaces is the precision of the audit exchange rate stored on transactions.
const ExchangeRatePlaces = 6

// Convert converts amount from one currency to another through their base rates:
//
//	amount * from.Rate / to.Rate
//
// The result is not rounded. Use Round at the display or persistence boundary.
func Convert(amount decimal.Decimal, from, to models.Currency) decimal.Decimal {
	if from.ID != "" && from.ID == to.ID {
		return amount
	}
	if to.Rate.IsZero() {
		// Only reachable with a corrupt rate table; rates are validated on write.
		return decimal.Zero
	}
	return amount.Mul(from.Rate).Div(to.Rate)
}

// ConvertToBase converts amount into the base currency.
// A nil base means no base currency is configured and yields zero.
func ConvertToBase(amount decimal.Decimal, from models.Currency, base *models.Currency) decimal.Decimal {
	if base == nil {
		return decimal.Zero
	}
	return Convert(amount, from, *base)
}

// Round rounds amount to the display precision of cur.
func Round(amount decimal.Decimal, cur models.Currency) decimal.Decimal {
	return amount.Round(cur.Decimals)
}

// ConvertRounded is Convert followed by rounding to the target currency's decimals.
func ConvertRounded(amount decimal.Decimal, from, to models.Currency) decimal.Decimal {
	return Round(Convert(amount, from, to), to)
}

// ExchangeRate returns toAmount/amount rounded to ExchangeRatePlaces, or nil
// when there is no counter amount or amount is not positive.
func ExchangeRate(amount decimal.Decimal, toAmount *decimal.Decimal) *decimal.Decimal {
	if toAmount == nil || !amount.IsPositive() {
		return nil
	}
	rate := toAmount.Div(amount).Round(ExchangeRatePlaces)
	return &rate
}

// ValidateRate checks the rate invariant for a currency that is or is not the base.
func ValidateRate(rate decimal.Decimal, isBase bool) error {
	if isBase {
		if !rate.Equal(decimal.NewFromInt(1)) {
			return models.Invalid("rate", "base currency rate must be exactly 1, got %s", rate)
		}
		return nil
	}
	if !rate.IsPositive() {
		return models.Invalid("rate", "rate must be strictly positive, got %s", rate)
	}
	return nil
}

// Rebase promotes the currency with id newBaseID to base currency.
//
// Every rate is divided by the promoted currency's old rate, so cross-currency
// conversions are unchanged; the promoted currency ends with rate 1 and is the
// only one flagged as base. The input slice is not modified.
func Rebase(currencies []models.Currency, newBaseID string) ([]models.Currency, error) {
	var pivot decimal.Decimal
	found := false
	for _, c := range currencies {
		if c.ID == newBaseID {
			pivot = c.Rate
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("currency %s not in rate table", newBaseID)
	}
	if !pivot.IsPositive() {
		return nil, models.Rejected("cannot promote currency with non-positive rate %s", pivot)
	}

	out := make([]models.Currency, len(currencies))
	for i, c := range currencies {
		if c.ID == newBaseID {
			c.Rate = decimal.NewFromInt(1)
			c.IsBase = true
		} else {
			c.Rate = c.Rate.Div(pivot)
			c.IsBase = false
		}
		out[i] = c
	}
	return out, nil
}

// FindBase returns the base currency in currencies, or nil when none is flagged.
func FindBase(currencies []models.Currency) *models.Currency {
	for i := range currencies {
		if currencies[i].IsBase {
			c := currencies[i]
			return &c
		}
	}
	return nil
}
