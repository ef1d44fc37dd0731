package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// TransactionServiceName is the fully-qualified name of the TransactionService.
const TransactionServiceName = "fintrack.v1.TransactionService"

const (
	TransactionServiceCreateTransactionProcedure = "/fintrack.v1.TransactionService/CreateTransaction"
	TransactionServiceUpdateTransactionProcedure = "/fintrack.v1.TransactionService/UpdateTransaction"
	TransactionServiceDeleteTransactionProcedure = "/fintrack.v1.TransactionService/DeleteTransaction"
	TransactionServiceListTransactionsProcedure  = "/fintrack.v1.TransactionService/ListTransactions"
)

// TransactionServiceHandler is implemented by the server side of the TransactionService.
type TransactionServiceHandler interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
}

// NewTransactionServiceHandler returns the mount path and handler for svc.
func NewTransactionServiceHandler(svc TransactionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(TransactionServiceName,
		unary(TransactionServiceCreateTransactionProcedure, svc.CreateTransaction, opts),
		unary(TransactionServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts),
		unary(TransactionServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts),
		unary(TransactionServiceListTransactionsProcedure, svc.ListTransactions, opts),
	)
}

// TransactionServiceClient calls a remote TransactionService.
type TransactionServiceClient interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
}

type transactionServiceClient struct {
	createTransaction *connect.Client[api.CreateTransactionRequest, api.CreateTransactionResponse]
	updateTransaction *connect.Client[api.UpdateTransactionRequest, api.UpdateTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
}

// NewTransactionServiceClient returns a client for the TransactionService served at baseURL.
func NewTransactionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransactionServiceClient {
	opts = clientOptions(opts)
	return &transactionServiceClient{
		createTransaction: newClient[api.CreateTransactionRequest, api.CreateTransactionResponse](httpClient, baseURL, TransactionServiceCreateTransactionProcedure, opts),
		updateTransaction: newClient[api.UpdateTransactionRequest, api.UpdateTransactionResponse](httpClient, baseURL, TransactionServiceUpdateTransactionProcedure, opts),
		deleteTransaction: newClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](httpClient, baseURL, TransactionServiceDeleteTransactionProcedure, opts),
		listTransactions:  newClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL, TransactionServiceListTransactionsProcedure, opts),
	}
}

func (c *transactionServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}
