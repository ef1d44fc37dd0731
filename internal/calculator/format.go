package calculator

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// CurrencyDefaults returns the well-known symbol and minor-unit precision for code.
// ok is false when the code is not an ISO 4217 currency known to go-money.
func CurrencyDefaults(code string) (symbol string, decimals int32, ok bool) {
	c := money.GetCurrency(strings.ToUpper(code))
	if c == nil {
		return "", 0, false
	}
	return c.Grapheme, int32(c.Fraction), true
}

// Format renders amount rounded to cur's decimals with its symbol.
func Format(amount decimal.Decimal, cur models.Currency) string {
	rounded := Round(amount, cur)

	// go-money knows grouping and symbol placement, but only when our
	// settings agree with its own view of the currency.
	if c := money.GetCurrency(cur.Code); c != nil && int32(c.Fraction) == cur.Decimals && c.Grapheme == cur.Symbol {
		return c.Formatter().Format(rounded.Shift(cur.Decimals).IntPart())
	}

	if rounded.IsNegative() {
		return "-" + cur.Symbol + rounded.Neg().StringFixed(cur.Decimals)
	}
	return cur.Symbol + rounded.StringFixed(cur.Decimals)
}
