package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// CurrencyServiceName is the fully-qualified name of the CurrencyService.
const CurrencyServiceName = "fintrack.v1.CurrencyService"

const (
	CurrencyServiceCreateCurrencyProcedure  = "/fintrack.v1.CurrencyService/CreateCurrency"
	CurrencyServiceUpdateCurrencyProcedure  = "/fintrack.v1.CurrencyService/UpdateCurrency"
	CurrencyServiceDeleteCurrencyProcedure  = "/fintrack.v1.CurrencyService/DeleteCurrency"
	CurrencyServiceListCurrenciesProcedure  = "/fintrack.v1.CurrencyService/ListCurrencies"
	CurrencyServiceSetBaseCurrencyProcedure = "/fintrack.v1.CurrencyService/SetBaseCurrency"
	CurrencyServiceConvertProcedure         = "/fintrack.v1.CurrencyService/Convert"
)

// CurrencyServiceHandler is implemented by the server side of the CurrencyService.
type CurrencyServiceHandler interface {
	CreateCurrency(context.Context, *connect.Request[api.CreateCurrencyRequest]) (*connect.Response[api.CreateCurrencyResponse], error)
	UpdateCurrency(context.Context, *connect.Request[api.UpdateCurrencyRequest]) (*connect.Response[api.UpdateCurrencyResponse], error)
	DeleteCurrency(context.Context, *connect.Request[api.DeleteCurrencyRequest]) (*connect.Response[api.DeleteCurrencyResponse], error)
	ListCurrencies(context.Context, *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error)
	SetBaseCurrency(context.Context, *connect.Request[api.SetBaseCurrencyRequest]) (*connect.Response[api.SetBaseCurrencyResponse], error)
	Convert(context.Context, *connect.Request[api.ConvertRequest]) (*connect.Response[api.ConvertResponse], error)
}

// NewCurrencyServiceHandler returns the mount path and handler for svc.
func NewCurrencyServiceHandler(svc CurrencyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(CurrencyServiceName,
		unary(CurrencyServiceCreateCurrencyProcedure, svc.CreateCurrency, opts),
		unary(CurrencyServiceUpdateCurrencyProcedure, svc.UpdateCurrency, opts),
		unary(CurrencyServiceDeleteCurrencyProcedure, svc.DeleteCurrency, opts),
		unary(CurrencyServiceListCurrenciesProcedure, svc.ListCurrencies, opts),
		unary(CurrencyServiceSetBaseCurrencyProcedure, svc.SetBaseCurrency, opts),
		unary(CurrencyServiceConvertProcedure, svc.Convert, opts),
	)
}

// CurrencyServiceClient calls a remote CurrencyService.
type CurrencyServiceClient interface {
	CreateCurrency(context.Context, *connect.Request[api.CreateCurrencyRequest]) (*connect.Response[api.CreateCurrencyResponse], error)
	UpdateCurrency(context.Context, *connect.Request[api.UpdateCurrencyRequest]) (*connect.Response[api.UpdateCurrencyResponse], error)
	DeleteCurrency(context.Context, *connect.Request[api.DeleteCurrencyRequest]) (*connect.Response[api.DeleteCurrencyResponse], error)
	ListCurrencies(context.Context, *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error)
	SetBaseCurrency(context.Context, *connect.Request[api.SetBaseCurrencyRequest]) (*connect.Response[api.SetBaseCurrencyResponse], error)
	Convert(context.Context, *connect.Request[api.ConvertRequest]) (*connect.Response[api.ConvertResponse], error)
}

type currencyServiceClient struct {
	createCurrency  *connect.Client[api.CreateCurrencyRequest, api.CreateCurrencyResponse]
	updateCurrency  *connect.Client[api.UpdateCurrencyRequest, api.UpdateCurrencyResponse]
	deleteCurrency  *connect.Client[api.DeleteCurrencyRequest, api.DeleteCurrencyResponse]
	listCurrencies  *connect.Client[api.ListCurrenciesRequest, api.ListCurrenciesResponse]
	setBaseCurrency *connect.Client[api.SetBaseCurrencyRequest, api.SetBaseCurrencyResponse]
	convert         *connect.Client[api.ConvertRequest, api.ConvertResponse]
}

// NewCurrencyServiceClient returns a client for the CurrencyService served at baseURL.
func NewCurrencyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CurrencyServiceClient {
	opts = clientOptions(opts)
	return &currencyServiceClient{
		createCurrency:  newClient[api.CreateCurrencyRequest, api.CreateCurrencyResponse](httpClient, baseURL, CurrencyServiceCreateCurrencyProcedure, opts),
		updateCurrency:  newClient[api.UpdateCurrencyRequest, api.UpdateCurrencyResponse](httpClient, baseURL, CurrencyServiceUpdateCurrencyProcedure, opts),
		deleteCurrency:  newClient[api.DeleteCurrencyRequest, api.DeleteCurrencyResponse](httpClient, baseURL, CurrencyServiceDeleteCurrencyProcedure, opts),
		listCurrencies:  newClient[api.ListCurrenciesRequest, api.ListCurrenciesResponse](httpClient, baseURL, CurrencyServiceListCurrenciesProcedure, opts),
		setBaseCurrency: newClient[api.SetBaseCurrencyRequest, api.SetBaseCurrencyResponse](httpClient, baseURL, CurrencyServiceSetBaseCurrencyProcedure, opts),
		convert:         newClient[api.ConvertRequest, api.ConvertResponse](httpClient, baseURL, CurrencyServiceConvertProcedure, opts),
	}
}

func (c *currencyServiceClient) CreateCurrency(ctx context.Context, req *connect.Request[api.CreateCurrencyRequest]) (*connect.Response[api.CreateCurrencyResponse], error) {
	return c.createCurrency.CallUnary(ctx, req)
}

func (c *currencyServiceClient) UpdateCurrency(ctx context.Context, req *connect.Request[api.UpdateCurrencyRequest]) (*connect.Response[api.UpdateCurrencyResponse], error) {
	return c.updateCurrency.CallUnary(ctx, req)
}

func (c *currencyServiceClient) DeleteCurrency(ctx context.Context, req *connect.Request[api.DeleteCurrencyRequest]) (*connect.Response[api.DeleteCurrencyResponse], error) {
	return c.deleteCurrency.CallUnary(ctx, req)
}

func (c *currencyServiceClient) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	return c.listCurrencies.CallUnary(ctx, req)
}

func (c *currencyServiceClient) SetBaseCurrency(ctx context.Context, req *connect.Request[api.SetBaseCurrencyRequest]) (*connect.Response[api.SetBaseCurrencyResponse], error) {
	return c.setBaseCurrency.CallUnary(ctx, req)
}

func (c *currencyServiceClient) Convert(ctx context.Context, req *connect.Request[api.ConvertRequest]) (*connect.Response[api.ConvertResponse], error) {
	return c.convert.CallUnary(ctx, req)
}
