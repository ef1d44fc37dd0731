package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// DebtServiceName is the fully-qualified name of the DebtService.
const DebtServiceName = "fintrack.v1.DebtService"

const (
	DebtServiceCreateDebtProcedure  = "/fintrack.v1.DebtService/CreateDebt"
	DebtServicePayDebtProcedure     = "/fintrack.v1.DebtService/PayDebt"
	DebtServiceCollectDebtProcedure = "/fintrack.v1.DebtService/CollectDebt"
	DebtServiceReopenDebtProcedure  = "/fintrack.v1.DebtService/ReopenDebt"
	DebtServiceGetDebtProcedure     = "/fintrack.v1.DebtService/GetDebt"
	DebtServiceListDebtsProcedure   = "/fintrack.v1.DebtService/ListDebts"
	DebtServiceDeleteDebtProcedure  = "/fintrack.v1.DebtService/DeleteDebt"
)

// DebtServiceHandler is implemented by the server side of the DebtService.
type DebtServiceHandler interface {
	CreateDebt(context.Context, *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error)
	PayDebt(context.Context, *connect.Request[api.PayDebtRequest]) (*connect.Response[api.PayDebtResponse], error)
	CollectDebt(context.Context, *connect.Request[api.CollectDebtRequest]) (*connect.Response[api.CollectDebtResponse], error)
	ReopenDebt(context.Context, *connect.Request[api.ReopenDebtRequest]) (*connect.Response[api.ReopenDebtResponse], error)
	GetDebt(context.Context, *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error)
	ListDebts(context.Context, *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
}

// NewDebtServiceHandler returns the mount path and handler for svc.
func NewDebtServiceHandler(svc DebtServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(DebtServiceName,
		unary(DebtServiceCreateDebtProcedure, svc.CreateDebt, opts),
		unary(DebtServicePayDebtProcedure, svc.PayDebt, opts),
		unary(DebtServiceCollectDebtProcedure, svc.CollectDebt, opts),
		unary(DebtServiceReopenDebtProcedure, svc.ReopenDebt, opts),
		unary(DebtServiceGetDebtProcedure, svc.GetDebt, opts),
		unary(DebtServiceListDebtsProcedure, svc.ListDebts, opts),
		unary(DebtServiceDeleteDebtProcedure, svc.DeleteDebt, opts),
	)
}

// DebtServiceClient calls a remote DebtService.
type DebtServiceClient interface {
	CreateDebt(context.Context, *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error)
	PayDebt(context.Context, *connect.Request[api.PayDebtRequest]) (*connect.Response[api.PayDebtResponse], error)
	CollectDebt(context.Context, *connect.Request[api.CollectDebtRequest]) (*connect.Response[api.CollectDebtResponse], error)
	ReopenDebt(context.Context, *connect.Request[api.ReopenDebtRequest]) (*connect.Response[api.ReopenDebtResponse], error)
	GetDebt(context.Context, *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error)
	ListDebts(context.Context, *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
}

type debtServiceClient struct {
	createDebt  *connect.Client[api.CreateDebtRequest, api.CreateDebtResponse]
	payDebt     *connect.Client[api.PayDebtRequest, api.PayDebtResponse]
	collectDebt *connect.Client[api.CollectDebtRequest, api.CollectDebtResponse]
	reopenDebt  *connect.Client[api.ReopenDebtRequest, api.ReopenDebtResponse]
	getDebt     *connect.Client[api.GetDebtRequest, api.GetDebtResponse]
	listDebts   *connect.Client[api.ListDebtsRequest, api.ListDebtsResponse]
	deleteDebt  *connect.Client[api.DeleteDebtRequest, api.DeleteDebtResponse]
}

// NewDebtServiceClient returns a client for the DebtService served at baseURL.
func NewDebtServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DebtServiceClient {
	opts = clientOptions(opts)
	return &debtServiceClient{
		createDebt:  newClient[api.CreateDebtRequest, api.CreateDebtResponse](httpClient, baseURL, DebtServiceCreateDebtProcedure, opts),
		payDebt:     newClient[api.PayDebtRequest, api.PayDebtResponse](httpClient, baseURL, DebtServicePayDebtProcedure, opts),
		collectDebt: newClient[api.CollectDebtRequest, api.CollectDebtResponse](httpClient, baseURL, DebtServiceCollectDebtProcedure, opts),
		reopenDebt:  newClient[api.ReopenDebtRequest, api.ReopenDebtResponse](httpClient, baseURL, DebtServiceReopenDebtProcedure, opts),
		getDebt:     newClient[api.GetDebtRequest, api.GetDebtResponse](httpClient, baseURL, DebtServiceGetDebtProcedure, opts),
		listDebts:   newClient[api.ListDebtsRequest, api.ListDebtsResponse](httpClient, baseURL, DebtServiceListDebtsProcedure, opts),
		deleteDebt:  newClient[api.DeleteDebtRequest, api.DeleteDebtResponse](httpClient, baseURL, DebtServiceDeleteDebtProcedure, opts),
	}
}

func (c *debtServiceClient) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error) {
	return c.createDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) PayDebt(ctx context.Context, req *connect.Request[api.PayDebtRequest]) (*connect.Response[api.PayDebtResponse], error) {
	return c.payDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) CollectDebt(ctx context.Context, req *connect.Request[api.CollectDebtRequest]) (*connect.Response[api.CollectDebtResponse], error) {
	return c.collectDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) ReopenDebt(ctx context.Context, req *connect.Request[api.ReopenDebtRequest]) (*connect.Response[api.ReopenDebtResponse], error) {
	return c.reopenDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error) {
	return c.getDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	return c.listDebts.CallUnary(ctx, req)
}

func (c *debtServiceClient) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	return c.deleteDebt.CallUnary(ctx, req)
}
