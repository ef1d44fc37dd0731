package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

// TransactionService implements the Connect TransactionService.
type TransactionService struct {
	transactions *ledger.Transactions
	logger       *slog.Logger
}

var _ apiconnect.TransactionServiceHandler = (*TransactionService)(nil)

// NewTransactionService creates a TransactionService over the ledger's posting service.
func NewTransactionService(l *ledger.Ledger, logger *slog.Logger) *TransactionService {
	return &TransactionService{transactions: l.Transactions, logger: logger}
}

// CreateTransaction posts a transaction of any kind.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	s.logger.Info("CreateTransaction request received",
		"type", req.Msg.Type,
		"account_id", req.Msg.AccountID,
		"to_account_id", req.Msg.ToAccountID,
	)

	in, err := toPostInput(req.Msg.TransactionInput)
	if err != nil {
		return nil, fail(s.logger, "CreateTransaction failed", err)
	}
	tx, err := s.transactions.Post(ctx, in)
	if err != nil {
		return nil, fail(s.logger, "CreateTransaction failed", err, "type", req.Msg.Type)
	}
	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: toTransaction(*tx)}), nil
}

// UpdateTransaction replaces every field of a transaction except its type.
func (s *TransactionService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	s.logger.Info("UpdateTransaction request received", "transaction_id", req.Msg.ID)

	in, err := toPostInput(req.Msg.TransactionInput)
	if err != nil {
		return nil, fail(s.logger, "UpdateTransaction failed", err, "transaction_id", req.Msg.ID)
	}
	tx, err := s.transactions.Update(ctx, req.Msg.ID, in)
	if err != nil {
		return nil, fail(s.logger, "UpdateTransaction failed", err, "transaction_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.UpdateTransactionResponse{Transaction: toTransaction(*tx)}), nil
}

// DeleteTransaction removes a transaction and re-evaluates any debt it paid.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	s.logger.Info("DeleteTransaction request received", "transaction_id", req.Msg.ID)

	if err := s.transactions.Delete(ctx, req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteTransaction failed", err, "transaction_id", req.Msg.ID)
	}
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// ListTransactions returns matching transactions ordered by date.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	filter, err := toTransactionFilter(req.Msg)
	if err != nil {
		return nil, fail(s.logger, "ListTransactions failed", err)
	}
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fail(s.logger, "ListTransactions failed", err)
	}

	out := make([]api.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = toTransaction(tx)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: out}), nil
}

func toTransactionFilter(req *api.ListTransactionsRequest) (storage.TransactionFilter, error) {
	filter := storage.TransactionFilter{
		AccountIDs: req.AccountIDs,
		CategoryID: req.CategoryID,
		Tag:        req.Tag,
	}
	for _, t := range req.Types {
		kind := models.TransactionType(t)
		if !kind.Valid() {
			return filter, models.Invalid("types", "unknown transaction type %q", t)
		}
		filter.Types = append(filter.Types, kind)
	}

	var err error
	if filter.From, err = parseDate("from", req.From); err != nil {
		return filter, err
	}
	if filter.To, err = parseDate("to", req.To); err != nil {
		return filter, err
	}
	return filter, nil
}
