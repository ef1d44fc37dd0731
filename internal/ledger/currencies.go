package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

const (
	maxCodeLength = 10
	maxDecimals   = 18
	defaultPlaces = 2
)

// CurrencyRegistry owns the currency table and the base currency designation.
type CurrencyRegistry struct {
	*deps
}

// CreateCurrencyInput describes a new currency. Symbol and Decimals default
// to the ISO 4217 values for known codes.
type CreateCurrencyInput struct {
	Code     string
	Symbol   string
	Decimals *int32

	// Rate is the value of one unit in base-currency units. A zero rate on
	// the base currency is read as 1.
	Rate   decimal.Decimal
	IsBase bool
}

// UpdateCurrencyInput carries the fields to change; nil fields are kept.
type UpdateCurrencyInput struct {
	Code     *string
	Symbol   *string
	Decimals *int32
	Rate     *decimal.Decimal

	// IsBase true promotes the currency as SetBase does. False is only
	// accepted on a currency that is not the base.
	IsBase *bool
}

// Create adds a currency. The first currency of the ledger becomes the base.
func (r *CurrencyRegistry) Create(ctx context.Context, in CreateCurrencyInput) (*models.Currency, error) {
	code, err := normalizeCode(in.Code)
	if err != nil {
		return nil, err
	}

	c := &models.Currency{Code: code, Symbol: strings.TrimSpace(in.Symbol), Rate: in.Rate, IsBase: in.IsBase}
	symbol, decimals, known := calculator.CurrencyDefaults(code)
	if c.Symbol == "" {
		c.Symbol = code
		if known {
			c.Symbol = symbol
		}
	}
	switch {
	case in.Decimals != nil:
		c.Decimals = *in.Decimals
	case known:
		c.Decimals = decimals
	default:
		c.Decimals = defaultPlaces
	}
	if err := validateDecimals(c.Decimals); err != nil {
		return nil, err
	}

	err = r.store.InTx(ctx, func(st storage.Store) error {
		if existing, err := st.GetCurrencyByCode(ctx, code); err == nil {
			return models.Rejected("currency %s already exists", existing.Code)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		base, err := st.GetBaseCurrency(ctx)
		if err != nil {
			return err
		}
		if base != nil && c.IsBase {
			return models.Invalid("is_base", "%s is already the base currency; create %s first and promote it", base.Code, code)
		}
		if base == nil {
			c.IsBase = true
		}
		if c.IsBase && c.Rate.IsZero() {
			c.Rate = decimal.NewFromInt(1)
		}
		if err := calculator.ValidateRate(c.Rate, c.IsBase); err != nil {
			return err
		}
		return st.CreateCurrency(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Currency created", "currency_id", c.ID, "code", c.Code, "is_base", c.IsBase)
	return c, nil
}

// Update changes a currency. Setting IsBase promotes it in the same unit.
func (r *CurrencyRegistry) Update(ctx context.Context, id string, in UpdateCurrencyInput) (*models.Currency, error) {
	var (
		updated  *models.Currency
		promoted bool
	)
	err := r.store.InTx(ctx, func(st storage.Store) error {
		c, err := st.GetCurrency(ctx, id)
		if err != nil {
			return err
		}

		if in.IsBase != nil {
			switch {
			case !*in.IsBase && c.IsBase:
				return models.Invalid("is_base", "cannot unset the base currency; promote another currency instead")
			case *in.IsBase && !c.IsBase:
				if in.Rate != nil {
					return models.Invalid("rate", "rate cannot be changed while promoting to base")
				}
				if _, err := r.setBase(ctx, st, id); err != nil {
					return err
				}
				promoted = true
				if c, err = st.GetCurrency(ctx, id); err != nil {
					return err
				}
			}
		}

		if in.Code != nil {
			code, err := normalizeCode(*in.Code)
			if err != nil {
				return err
			}
			if code != c.Code {
				if _, err := st.GetCurrencyByCode(ctx, code); err == nil {
					return models.Rejected("currency %s already exists", code)
				} else if !errors.Is(err, storage.ErrNotFound) {
					return err
				}
				c.Code = code
			}
		}
		if in.Symbol != nil {
			symbol := strings.TrimSpace(*in.Symbol)
			if symbol == "" {
				return models.Invalid("symbol", "must not be empty")
			}
			c.Symbol = symbol
		}
		if in.Decimals != nil {
			if err := validateDecimals(*in.Decimals); err != nil {
				return err
			}
			c.Decimals = *in.Decimals
		}
		if in.Rate != nil {
			if err := calculator.ValidateRate(*in.Rate, c.IsBase); err != nil {
				return err
			}
			c.Rate = *in.Rate
		}

		if err := st.UpdateCurrency(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if promoted {
		r.recorder.BaseCurrencyChanged()
	}
	r.logger.Info("Currency updated", "currency_id", updated.ID, "code", updated.Code)
	return updated, nil
}

// Delete removes a currency that is neither the base, the last one, nor
// referenced by any account.
func (r *CurrencyRegistry) Delete(ctx context.Context, id string) error {
	err := r.store.InTx(ctx, func(st storage.Store) error {
		c, err := st.GetCurrency(ctx, id)
		if err != nil {
			return err
		}
		if c.IsBase {
			return models.Rejected("cannot delete base currency %s", c.Code)
		}

		all, err := st.ListCurrencies(ctx)
		if err != nil {
			return err
		}
		if len(all) <= 1 {
			return models.Rejected("cannot delete the last currency")
		}

		n, err := st.CountAccounts(ctx, storage.AccountFilter{CurrencyID: id, IncludeInactive: true, IncludeRemoved: true})
		if err != nil {
			return err
		}
		if n > 0 {
			return models.Rejected("currency %s is used by %d account(s)", c.Code, n)
		}
		return st.DeleteCurrency(ctx, id)
	})
	if err != nil {
		return err
	}

	r.logger.Info("Currency deleted", "currency_id", id)
	return nil
}

// SetBase promotes the currency to base, re-basing every rate in one unit.
// Promoting the current base is a no-op.
func (r *CurrencyRegistry) SetBase(ctx context.Context, id string) (*models.Currency, error) {
	var base *models.Currency
	err := r.store.InTx(ctx, func(st storage.Store) error {
		var err error
		base, err = r.setBase(ctx, st, id)
		return err
	})
	if errors.Is(err, errAlreadyBase) {
		return base, nil
	}
	if err != nil {
		return nil, err
	}

	r.recorder.BaseCurrencyChanged()
	r.logger.Info("Base currency changed", "currency_id", base.ID, "code", base.Code)
	return base, nil
}

var errAlreadyBase = errors.New("currency is already the base")

// setBase rewrites the rate table within st. The previous base is cleared
// before the new one is flagged so the single-base index never sees two.
func (r *CurrencyRegistry) setBase(ctx context.Context, st storage.Store, id string) (*models.Currency, error) {
	all, err := st.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	target, err := st.GetCurrency(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.IsBase {
		return target, errAlreadyBase
	}

	rebased, err := calculator.Rebase(all, id)
	if err != nil {
		return nil, err
	}

	var promoted *models.Currency
	for i := range rebased {
		c := rebased[i]
		if c.ID == id {
			promoted = &c
			continue
		}
		if err := st.UpdateCurrency(ctx, &c); err != nil {
			return nil, fmt.Errorf("rebase %s: %w", c.Code, err)
		}
	}
	if err := st.UpdateCurrency(ctx, promoted); err != nil {
		return nil, fmt.Errorf("promote %s: %w", promoted.Code, err)
	}

	r.logger.Debug("Rates rebased", "base", promoted.Code, "currencies", len(rebased))
	return promoted, nil
}

// Get returns one currency.
func (r *CurrencyRegistry) Get(ctx context.Context, id string) (*models.Currency, error) {
	return r.store.GetCurrency(ctx, id)
}

// List returns every currency ordered by code.
func (r *CurrencyRegistry) List(ctx context.Context) ([]models.Currency, error) {
	return r.store.ListCurrencies(ctx)
}

// Base returns the base currency, or nil when none is configured.
func (r *CurrencyRegistry) Base(ctx context.Context) (*models.Currency, error) {
	return r.store.GetBaseCurrency(ctx)
}

// Convert converts amount between two currencies and rounds the result to
// the target currency's decimals.
func (r *CurrencyRegistry) Convert(ctx context.Context, amount decimal.Decimal, fromID, toID string) (decimal.Decimal, *models.Currency, error) {
	from, err := r.store.GetCurrency(ctx, fromID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	to, err := r.store.GetCurrency(ctx, toID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return calculator.ConvertRounded(amount, *from, *to), to, nil
}

// ConvertToBase converts amount into the base currency. With no base
// currency it returns zero and a nil currency.
func (r *CurrencyRegistry) ConvertToBase(ctx context.Context, amount decimal.Decimal, fromID string) (decimal.Decimal, *models.Currency, error) {
	base, err := r.store.GetBaseCurrency(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if base == nil {
		return decimal.Zero, nil, nil
	}
	return r.Convert(ctx, amount, fromID, base.ID)
}

// currencyIndex loads every currency keyed by id, plus the base.
func currencyIndex(ctx context.Context, st storage.Store) (map[string]models.Currency, *models.Currency, error) {
	all, err := st.ListCurrencies(ctx)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]models.Currency, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	return byID, calculator.FindBase(all), nil
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", models.Invalid("code", "must not be empty")
	}
	if len(code) > maxCodeLength {
		return "", models.Invalid("code", "must be at most %d characters", maxCodeLength)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", models.Invalid("code", "must contain only letters and digits, got %q", code)
		}
	}
	return code, nil
}

func validateDecimals(d int32) error {
	if d < 0 || d > maxDecimals {
		return models.Invalid("decimals", "must be between 0 and %d, got %d", maxDecimals, d)
	}
	return nil
}
