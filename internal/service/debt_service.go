package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

// DebtService implements the Connect DebtService.
type DebtService struct {
	debts  *ledger.DebtTracker
	logger *slog.Logger
}

var _ apiconnect.DebtServiceHandler = (*DebtService)(nil)

// NewDebtService creates a DebtService over the ledger's debt tracker.
func NewDebtService(l *ledger.Ledger, logger *slog.Logger) *DebtService {
	return &DebtService{debts: l.Debts, logger: logger}
}

// CreateDebt opens a debt account.
func (s *DebtService) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error) {
	s.logger.Info("CreateDebt request received",
		"name", req.Msg.Name,
		"debt_type", req.Msg.DebtType,
		"target", req.Msg.TargetAmount.String(),
	)

	in := ledger.CreateDebtInput{
		Name:         req.Msg.Name,
		CurrencyID:   req.Msg.CurrencyID,
		DebtType:     models.DebtType(req.Msg.DebtType),
		TargetAmount: req.Msg.TargetAmount,
		Counterparty: req.Msg.Counterparty,
	}
	due, err := parseDate("due_date", req.Msg.DueDate)
	if err != nil {
		return nil, fail(s.logger, "CreateDebt failed", err)
	}
	if !due.IsZero() {
		in.DueDate = &due
	}

	debt, err := s.debts.Create(ctx, in)
	if err != nil {
		return nil, fail(s.logger, "CreateDebt failed", err, "name", req.Msg.Name)
	}
	return connect.NewResponse(&api.CreateDebtResponse{Debt: toAccount(*debt)}), nil
}

// PayDebt pays an i_owe debt from a regular account.
func (s *DebtService) PayDebt(ctx context.Context, req *connect.Request[api.PayDebtRequest]) (*connect.Response[api.PayDebtResponse], error) {
	s.logger.Info("PayDebt request received",
		"debt_id", req.Msg.DebtID,
		"from_account_id", req.Msg.FromAccountID,
		"amount", req.Msg.Amount.String(),
	)

	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, fail(s.logger, "PayDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	tx, err := s.debts.Pay(ctx, ledger.PayDebtInput{
		DebtID:        req.Msg.DebtID,
		FromAccountID: req.Msg.FromAccountID,
		Amount:        req.Msg.Amount,
		Date:          date,
		Description:   req.Msg.Description,
		Tags:          req.Msg.Tags,
	})
	if err != nil {
		return nil, fail(s.logger, "PayDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	summary, err := s.debts.Get(ctx, req.Msg.DebtID)
	if err != nil {
		return nil, fail(s.logger, "PayDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	return connect.NewResponse(&api.PayDebtResponse{
		Transaction: toTransaction(*tx),
		Debt:        toDebtSummary(*summary),
	}), nil
}

// CollectDebt collects on an owed_to_me debt into a regular account.
func (s *DebtService) CollectDebt(ctx context.Context, req *connect.Request[api.CollectDebtRequest]) (*connect.Response[api.CollectDebtResponse], error) {
	s.logger.Info("CollectDebt request received",
		"debt_id", req.Msg.DebtID,
		"to_account_id", req.Msg.ToAccountID,
		"debt_amount", req.Msg.DebtAmount.String(),
	)

	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, fail(s.logger, "CollectDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	tx, err := s.debts.Collect(ctx, ledger.CollectDebtInput{
		DebtID:      req.Msg.DebtID,
		ToAccountID: req.Msg.ToAccountID,
		DebtAmount:  req.Msg.DebtAmount,
		Date:        date,
		Description: req.Msg.Description,
		Tags:        req.Msg.Tags,
	})
	if err != nil {
		return nil, fail(s.logger, "CollectDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	summary, err := s.debts.Get(ctx, req.Msg.DebtID)
	if err != nil {
		return nil, fail(s.logger, "CollectDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	return connect.NewResponse(&api.CollectDebtResponse{
		Transaction: toTransaction(*tx),
		Debt:        toDebtSummary(*summary),
	}), nil
}

// ReopenDebt clears the payoff flag of a settled debt.
func (s *DebtService) ReopenDebt(ctx context.Context, req *connect.Request[api.ReopenDebtRequest]) (*connect.Response[api.ReopenDebtResponse], error) {
	s.logger.Info("ReopenDebt request received", "debt_id", req.Msg.DebtID)

	debt, err := s.debts.Reopen(ctx, req.Msg.DebtID)
	if err != nil {
		return nil, fail(s.logger, "ReopenDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	return connect.NewResponse(&api.ReopenDebtResponse{Debt: toAccount(*debt)}), nil
}

// GetDebt returns a debt with its payoff progress.
func (s *DebtService) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error) {
	summary, err := s.debts.Get(ctx, req.Msg.DebtID)
	if err != nil {
		return nil, fail(s.logger, "GetDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	return connect.NewResponse(&api.GetDebtResponse{Debt: toDebtSummary(*summary)}), nil
}

// ListDebts returns every debt, including inactive ones.
func (s *DebtService) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	summaries, err := s.debts.List(ctx)
	if err != nil {
		return nil, fail(s.logger, "ListDebts failed", err)
	}

	out := make([]api.DebtSummary, len(summaries))
	for i, summary := range summaries {
		out[i] = toDebtSummary(summary)
	}
	return connect.NewResponse(&api.ListDebtsResponse{Debts: out}), nil
}

// DeleteDebt removes a debt without payment history.
func (s *DebtService) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	s.logger.Info("DeleteDebt request received", "debt_id", req.Msg.DebtID)

	if err := s.debts.Delete(ctx, req.Msg.DebtID); err != nil {
		return nil, fail(s.logger, "DeleteDebt failed", err, "debt_id", req.Msg.DebtID)
	}
	return connect.NewResponse(&api.DeleteDebtResponse{}), nil
}
