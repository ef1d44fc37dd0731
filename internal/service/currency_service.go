package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

// CurrencyService implements the Connect CurrencyService.
type CurrencyService struct {
	currencies *ledger.CurrencyRegistry
	logger     *slog.Logger
}

var _ apiconnect.CurrencyServiceHandler = (*CurrencyService)(nil)

// NewCurrencyService creates a CurrencyService over the ledger's currency registry.
func NewCurrencyService(l *ledger.Ledger, logger *slog.Logger) *CurrencyService {
	return &CurrencyService{currencies: l.Currencies, logger: logger}
}

// CreateCurrency registers a currency. The first one becomes the base.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req *connect.Request[api.CreateCurrencyRequest]) (*connect.Response[api.CreateCurrencyResponse], error) {
	s.logger.Info("CreateCurrency request received", "code", req.Msg.Code, "is_base", req.Msg.IsBase)

	currency, err := s.currencies.Create(ctx, ledger.CreateCurrencyInput{
		Code:     req.Msg.Code,
		Symbol:   req.Msg.Symbol,
		Decimals: req.Msg.Decimals,
		Rate:     req.Msg.Rate,
		IsBase:   req.Msg.IsBase,
	})
	if err != nil {
		return nil, fail(s.logger, "CreateCurrency failed", err, "code", req.Msg.Code)
	}
	return connect.NewResponse(&api.CreateCurrencyResponse{Currency: toCurrency(*currency)}), nil
}

// UpdateCurrency changes the given fields of a currency.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, req *connect.Request[api.UpdateCurrencyRequest]) (*connect.Response[api.UpdateCurrencyResponse], error) {
	s.logger.Info("UpdateCurrency request received", "currency_id", req.Msg.ID)

	currency, err := s.currencies.Update(ctx, req.Msg.ID, ledger.UpdateCurrencyInput{
		Code:     req.Msg.Code,
		Symbol:   req.Msg.Symbol,
		Decimals: req.Msg.Decimals,
		Rate:     req.Msg.Rate,
		IsBase:   req.Msg.IsBase,
	})
	if err != nil {
		return nil, fail(s.logger, "UpdateCurrency failed", err, "currency_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.UpdateCurrencyResponse{Currency: toCurrency(*currency)}), nil
}

// DeleteCurrency removes an unused, non-base currency.
func (s *CurrencyService) DeleteCurrency(ctx context.Context, req *connect.Request[api.DeleteCurrencyRequest]) (*connect.Response[api.DeleteCurrencyResponse], error) {
	s.logger.Info("DeleteCurrency request received", "currency_id", req.Msg.ID)

	if err := s.currencies.Delete(ctx, req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteCurrency failed", err, "currency_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.DeleteCurrencyResponse{}), nil
}

// ListCurrencies returns every currency ordered by code.
func (s *CurrencyService) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	currencies, err := s.currencies.List(ctx)
	if err != nil {
		return nil, fail(s.logger, "ListCurrencies failed", err)
	}
	return connect.NewResponse(&api.ListCurrenciesResponse{Currencies: toCurrencies(currencies)}), nil
}

// SetBaseCurrency promotes a currency and returns the re-based rate table.
func (s *CurrencyService) SetBaseCurrency(ctx context.Context, req *connect.Request[api.SetBaseCurrencyRequest]) (*connect.Response[api.SetBaseCurrencyResponse], error) {
	s.logger.Info("SetBaseCurrency request received", "currency_id", req.Msg.ID)

	base, err := s.currencies.SetBase(ctx, req.Msg.ID)
	if err != nil {
		return nil, fail(s.logger, "SetBaseCurrency failed", err, "currency_id", req.Msg.ID)
	}
	currencies, err := s.currencies.List(ctx)
	if err != nil {
		return nil, fail(s.logger, "SetBaseCurrency failed", err, "currency_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.SetBaseCurrencyResponse{
		Base:       toCurrency(*base),
		Currencies: toCurrencies(currencies),
	}), nil
}

// Convert converts an amount between currencies, or into the base currency
// when no target is given.
func (s *CurrencyService) Convert(ctx context.Context, req *connect.Request[api.ConvertRequest]) (*connect.Response[api.ConvertResponse], error) {
	var (
		amount   decimal.Decimal
		currency *models.Currency
		err      error
	)
	if req.Msg.ToCurrencyID == "" {
		amount, currency, err = s.currencies.ConvertToBase(ctx, req.Msg.Amount, req.Msg.FromCurrencyID)
	} else {
		amount, currency, err = s.currencies.Convert(ctx, req.Msg.Amount, req.Msg.FromCurrencyID, req.Msg.ToCurrencyID)
	}
	if err != nil {
		return nil, fail(s.logger, "Convert failed", err, "from", req.Msg.FromCurrencyID, "to", req.Msg.ToCurrencyID)
	}

	res := &api.ConvertResponse{Amount: amount, Currency: toCurrencyPtr(currency)}
	if currency != nil {
		res.Formatted = calculator.Format(amount, *currency)
	}
	return connect.NewResponse(res), nil
}
