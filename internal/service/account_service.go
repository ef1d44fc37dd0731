package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

// AccountService implements the Connect AccountService.
type AccountService struct {
	accounts *ledger.Accounts
	logger   *slog.Logger
}

var _ apiconnect.AccountServiceHandler = (*AccountService)(nil)

// NewAccountService creates an AccountService over the ledger's accounts.
func NewAccountService(l *ledger.Ledger, logger *slog.Logger) *AccountService {
	return &AccountService{accounts: l.Accounts, logger: logger}
}

// CreateAccount creates a regular account. Debts go through the DebtService.
func (s *AccountService) CreateAccount(ctx context.Context, req *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	s.logger.Info("CreateAccount request received", "name", req.Msg.Name, "currency_id", req.Msg.CurrencyID)

	account, err := s.accounts.Create(ctx, ledger.CreateAccountInput{
		Name:           req.Msg.Name,
		CurrencyID:     req.Msg.CurrencyID,
		InitialBalance: req.Msg.InitialBalance,
	})
	if err != nil {
		return nil, fail(s.logger, "CreateAccount failed", err, "name", req.Msg.Name)
	}
	return connect.NewResponse(&api.CreateAccountResponse{Account: toAccount(*account)}), nil
}

// UpdateAccount changes the given fields of a regular or debt account.
func (s *AccountService) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	s.logger.Info("UpdateAccount request received", "account_id", req.Msg.ID)

	in := ledger.UpdateAccountInput{
		Name:           req.Msg.Name,
		IsActive:       req.Msg.IsActive,
		InitialBalance: req.Msg.InitialBalance,
		CurrencyID:     req.Msg.CurrencyID,
		TargetAmount:   req.Msg.TargetAmount,
		Counterparty:   req.Msg.Counterparty,
	}
	if req.Msg.DueDate != nil {
		due, err := parseDate("due_date", *req.Msg.DueDate)
		if err != nil {
			return nil, fail(s.logger, "UpdateAccount failed", err, "account_id", req.Msg.ID)
		}
		if due.IsZero() {
			in.ClearDueDate = true
		} else {
			in.DueDate = &due
		}
	}

	account, err := s.accounts.Update(ctx, req.Msg.ID, in)
	if err != nil {
		return nil, fail(s.logger, "UpdateAccount failed", err, "account_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.UpdateAccountResponse{Account: toAccount(*account)}), nil
}

// DeleteAccount soft-removes an account no transaction references.
func (s *AccountService) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	s.logger.Info("DeleteAccount request received", "account_id", req.Msg.ID)

	if err := s.accounts.Delete(ctx, req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteAccount failed", err, "account_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.DeleteAccountResponse{}), nil
}

// ListAccounts returns accounts matching the request filter.
func (s *AccountService) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	filter := storage.AccountFilter{
		Type:            models.AccountType(req.Msg.Type),
		CurrencyID:      req.Msg.CurrencyID,
		IncludeInactive: req.Msg.IncludeInactive,
	}
	if filter.Type != "" && !filter.Type.Valid() {
		err := models.Invalid("type", "must be regular or debt, got %q", req.Msg.Type)
		return nil, fail(s.logger, "ListAccounts failed", err)
	}

	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, fail(s.logger, "ListAccounts failed", err)
	}
	return connect.NewResponse(&api.ListAccountsResponse{Accounts: toAccounts(accounts)}), nil
}

// GetBalance replays an account's history and reports it in both its own
// currency and the base currency.
func (s *AccountService) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	balance, err := s.accounts.Balance(ctx, req.Msg.AccountID)
	if err != nil {
		return nil, fail(s.logger, "GetBalance failed", err, "account_id", req.Msg.AccountID)
	}

	res := &api.GetBalanceResponse{
		AccountID: balance.Account.ID,
		Balance:   balance.Balance,
		Currency:  toCurrency(balance.Currency),
		Formatted: calculator.Format(balance.Balance, balance.Currency),
	}
	if balance.Base != nil {
		inBase := balance.BalanceInBase
		res.BaseBalance = &inBase
		res.BaseCurrency = toCurrencyPtr(balance.Base)
	}
	return connect.NewResponse(res), nil
}

// GetBalanceHistory returns the daily balance series between two dates.
func (s *AccountService) GetBalanceHistory(ctx context.Context, req *connect.Request[api.GetBalanceHistoryRequest]) (*connect.Response[api.GetBalanceHistoryResponse], error) {
	s.logger.Info("GetBalanceHistory request received",
		"accounts", len(req.Msg.AccountIDs),
		"start_date", req.Msg.StartDate,
		"end_date", req.Msg.EndDate,
	)

	start, err := parseDate("start_date", req.Msg.StartDate)
	if err != nil {
		return nil, fail(s.logger, "GetBalanceHistory failed", err)
	}
	end, err := parseDate("end_date", req.Msg.EndDate)
	if err != nil {
		return nil, fail(s.logger, "GetBalanceHistory failed", err)
	}

	history, err := s.accounts.BalanceHistory(ctx, req.Msg.AccountIDs, start, end)
	if err != nil {
		return nil, fail(s.logger, "GetBalanceHistory failed", err)
	}

	series := make([]api.HistorySeries, len(history.Series))
	for i, line := range history.Series {
		series[i] = api.HistorySeries{Name: line.Name, Type: line.Type, Data: line.Data}
	}
	return connect.NewResponse(&api.GetBalanceHistoryResponse{
		Dates:    history.Dates,
		Series:   series,
		Currency: history.Currency,
	}), nil
}

// GetNetWorth sums regular balances and open debts in the base currency.
func (s *AccountService) GetNetWorth(ctx context.Context, req *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error) {
	worth, err := s.accounts.NetWorth(ctx)
	if err != nil {
		return nil, fail(s.logger, "GetNetWorth failed", err)
	}

	res := &api.GetNetWorthResponse{
		BaseCurrency:  toCurrencyPtr(worth.Base),
		AccountsTotal: worth.AccountsTotal,
		DebtsImpact:   worth.DebtsImpact,
		Total:         worth.Total,
	}
	if worth.Base != nil {
		res.Formatted = calculator.Format(worth.Total, *worth.Base)
	}
	return connect.NewResponse(res), nil
}

// CreateCategory adds an income or expense category.
func (s *AccountService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	s.logger.Info("CreateCategory request received", "name", req.Msg.Name, "kind", req.Msg.Kind)

	category, err := s.accounts.CreateCategory(ctx, req.Msg.Name, models.CategoryKind(req.Msg.Kind))
	if err != nil {
		return nil, fail(s.logger, "CreateCategory failed", err, "name", req.Msg.Name)
	}
	return connect.NewResponse(&api.CreateCategoryResponse{Category: toCategory(*category)}), nil
}

// ListCategories returns every category.
func (s *AccountService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories, err := s.accounts.ListCategories(ctx)
	if err != nil {
		return nil, fail(s.logger, "ListCategories failed", err)
	}

	out := make([]api.Category, len(categories))
	for i, c := range categories {
		out[i] = toCategory(c)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: out}), nil
}
