package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		from, to models.Currency
		want     string // rounded to to.Decimals
	}{
		{"EUR to base", "100", eur, usd, "90"},
		{"base to EUR", "100", usd, eur, "111.11"},
		{"same currency", "42.5", eur, eur, "42.5"},
		{"EUR to JPY", "10", eur, jpy, "1343"},
		{"zero", "0", usd, eur, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertRounded(d(tt.amount), tt.from, tt.to)
			assertDecimal(t, "ConvertRounded", got, d(tt.want))
		})
	}
}

func TestConvertDoesNotRoundIntermediate(t *testing.T) {
	got := Convert(d("100"), usd, eur)
	if got.Equal(d("111.11")) {
		t.Fatalf("Convert rounded early: %s", got)
	}
	if !got.Round(2).Equal(d("111.11")) {
		t.Errorf("Convert = %s, want ~111.11", got)
	}
}

func TestConvertToBaseWithoutBase(t *testing.T) {
	got := ConvertToBase(d("100"), eur, nil)
	assertDecimal(t, "ConvertToBase", got, decimal.Zero)
}

func TestConvertRoundTrip(t *testing.T) {
	currencies := []models.Currency{usd, eur, jpy,
		{ID: "gbp", Code: "GBP", Decimals: 2, Rate: d("1.27")},
		{ID: "btc", Code: "BTC", Decimals: 8, Rate: d("61234.5")},
	}
	amounts := []string{"0.01", "1", "99.99", "123456.78"}

	for _, a := range currencies {
		for _, b := range currencies {
			for _, amt := range amounts {
				x := d(amt)
				back := Convert(Convert(x, a, b), b, a)
				tolerance := decimal.New(1, -a.Decimals)
				if back.Sub(x).Abs().GreaterThan(tolerance) {
					t.Errorf("%s->%s->%s: %s became %s", a.Code, b.Code, a.Code, x, back)
				}
			}
		}
	}
}

func TestRebase(t *testing.T) {
	before := []models.Currency{usd, eur, jpy}

	after, err := Rebase(before, eur.ID)
	if err != nil {
		t.Fatalf("Rebase failed: %v", err)
	}

	t.Run("single base with rate 1", func(t *testing.T) {
		bases := 0
		for _, c := range after {
			if c.IsBase {
				bases++
				assertDecimal(t, c.Code+" rate", c.Rate, decimal.NewFromInt(1))
				if c.ID != eur.ID {
					t.Errorf("base = %s, want EUR", c.Code)
				}
			}
		}
		if bases != 1 {
			t.Errorf("found %d base currencies, want 1", bases)
		}
	})

	t.Run("old base re-rated", func(t *testing.T) {
		// 1 USD = 1/0.9 EUR
		assertDecimal(t, "USD rate", after[0].Rate.Round(6), d("1.111111"))
	})

	t.Run("input untouched", func(t *testing.T) {
		if !before[0].IsBase || before[1].IsBase {
			t.Error("Rebase modified its input")
		}
	})

	t.Run("cross rates preserved", func(t *testing.T) {
		for i := range before {
			for j := range before {
				x, y := before[i], before[j]
				amt := d("250.75")
				was := ConvertRounded(amt, x, y)
				now := ConvertRounded(amt, after[i], after[j])
				tolerance := decimal.New(1, -y.Decimals)
				if was.Sub(now).Abs().GreaterThan(tolerance) {
					t.Errorf("%s->%s changed from %s to %s", x.Code, y.Code, was, now)
				}
			}
		}
	})

	t.Run("unknown currency", func(t *testing.T) {
		if _, err := Rebase(before, "nope"); err == nil {
			t.Error("expected error for unknown currency")
		}
	})
}

func TestFindBase(t *testing.T) {
	if b := FindBase([]models.Currency{eur, jpy}); b != nil {
		t.Errorf("FindBase = %s, want nil", b.Code)
	}
	if b := FindBase([]models.Currency{eur, usd}); b == nil || b.ID != usd.ID {
		t.Errorf("FindBase = %v, want USD", b)
	}
}

func TestValidateRate(t *testing.T) {
	tests := []struct {
		rate    string
		isBase  bool
		wantErr bool
	}{
		{"1", true, false},
		{"1.000", true, false},
		{"0.9", true, true},
		{"0.9", false, false},
		{"0", false, true},
		{"-2", false, true},
	}
	for _, tt := range tests {
		err := ValidateRate(d(tt.rate), tt.isBase)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRate(%s, %v) error = %v, wantErr %v", tt.rate, tt.isBase, err, tt.wantErr)
		}
		if err != nil && !models.IsValidation(err) {
			t.Errorf("ValidateRate(%s) returned %T, want validation error", tt.rate, err)
		}
	}
}

func TestExchangeRate(t *testing.T) {
	if r := ExchangeRate(d("100"), nil); r != nil {
		t.Errorf("ExchangeRate without counter amount = %s, want nil", r)
	}
	if r := ExchangeRate(decimal.Zero, dp("5")); r != nil {
		t.Errorf("ExchangeRate with zero amount = %s, want nil", r)
	}
	r := ExchangeRate(d("3"), dp("1"))
	if r == nil {
		t.Fatal("ExchangeRate = nil")
	}
	assertDecimal(t, "ExchangeRate", *r, d("0.333333"))
}

func TestFormat(t *testing.T) {
	custom := models.Currency{Code: "ZZZ", Symbol: "Z", Decimals: 3}
	if got := Format(d("1.2344"), custom); got != "Z1.234" {
		t.Errorf("Format = %q, want %q", got, "Z1.234")
	}
	if got := Format(d("-5"), custom); got != "-Z5.000" {
		t.Errorf("Format = %q, want %q", got, "-Z5.000")
	}
	if got := Format(d("1234.567"), usd); got != "$1,234.57" {
		t.Errorf("Format = %q, want %q", got, "$1,234.57")
	}
}

func TestCurrencyDefaults(t *testing.T) {
	symbol, decimals, ok := CurrencyDefaults("jpy")
	if !ok {
		t.Fatal("JPY should be known")
	}
	if symbol != "¥" || decimals != 0 {
		t.Errorf("JPY defaults = %q/%d", symbol, decimals)
	}
	if _, _, ok := CurrencyDefaults("ZZZ"); ok {
		t.Error("ZZZ should be unknown")
	}
}
