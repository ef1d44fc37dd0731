package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// AccountServiceName is the fully-qualified name of the AccountService.
const AccountServiceName = "fintrack.v1.AccountService"

const (
	AccountServiceCreateAccountProcedure     = "/fintrack.v1.AccountService/CreateAccount"
	AccountServiceUpdateAccountProcedure     = "/fintrack.v1.AccountService/UpdateAccount"
	AccountServiceDeleteAccountProcedure     = "/fintrack.v1.AccountService/DeleteAccount"
	AccountServiceListAccountsProcedure      = "/fintrack.v1.AccountService/ListAccounts"
	AccountServiceGetBalanceProcedure        = "/fintrack.v1.AccountService/GetBalance"
	AccountServiceGetBalanceHistoryProcedure = "/fintrack.v1.AccountService/GetBalanceHistory"
	AccountServiceGetNetWorthProcedure       = "/fintrack.v1.AccountService/GetNetWorth"
	AccountServiceCreateCategoryProcedure    = "/fintrack.v1.AccountService/CreateCategory"
	AccountServiceListCategoriesProcedure    = "/fintrack.v1.AccountService/ListCategories"
)

// AccountServiceHandler is implemented by the server side of the AccountService.
type AccountServiceHandler interface {
	CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
	GetBalanceHistory(context.Context, *connect.Request[api.GetBalanceHistoryRequest]) (*connect.Response[api.GetBalanceHistoryResponse], error)
	GetNetWorth(context.Context, *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewAccountServiceHandler returns the mount path and handler for svc.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(AccountServiceName,
		unary(AccountServiceCreateAccountProcedure, svc.CreateAccount, opts),
		unary(AccountServiceUpdateAccountProcedure, svc.UpdateAccount, opts),
		unary(AccountServiceDeleteAccountProcedure, svc.DeleteAccount, opts),
		unary(AccountServiceListAccountsProcedure, svc.ListAccounts, opts),
		unary(AccountServiceGetBalanceProcedure, svc.GetBalance, opts),
		unary(AccountServiceGetBalanceHistoryProcedure, svc.GetBalanceHistory, opts),
		unary(AccountServiceGetNetWorthProcedure, svc.GetNetWorth, opts),
		unary(AccountServiceCreateCategoryProcedure, svc.CreateCategory, opts),
		unary(AccountServiceListCategoriesProcedure, svc.ListCategories, opts),
	)
}

// AccountServiceClient calls a remote AccountService.
type AccountServiceClient interface {
	CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
	GetBalanceHistory(context.Context, *connect.Request[api.GetBalanceHistoryRequest]) (*connect.Response[api.GetBalanceHistoryResponse], error)
	GetNetWorth(context.Context, *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

type accountServiceClient struct {
	createAccount     *connect.Client[api.CreateAccountRequest, api.CreateAccountResponse]
	updateAccount     *connect.Client[api.UpdateAccountRequest, api.UpdateAccountResponse]
	deleteAccount     *connect.Client[api.DeleteAccountRequest, api.DeleteAccountResponse]
	listAccounts      *connect.Client[api.ListAccountsRequest, api.ListAccountsResponse]
	getBalance        *connect.Client[api.GetBalanceRequest, api.GetBalanceResponse]
	getBalanceHistory *connect.Client[api.GetBalanceHistoryRequest, api.GetBalanceHistoryResponse]
	getNetWorth       *connect.Client[api.GetNetWorthRequest, api.GetNetWorthResponse]
	createCategory    *connect.Client[api.CreateCategoryRequest, api.CreateCategoryResponse]
	listCategories    *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
}

// NewAccountServiceClient returns a client for the AccountService served at baseURL.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AccountServiceClient {
	opts = clientOptions(opts)
	return &accountServiceClient{
		createAccount:     newClient[api.CreateAccountRequest, api.CreateAccountResponse](httpClient, baseURL, AccountServiceCreateAccountProcedure, opts),
		updateAccount:     newClient[api.UpdateAccountRequest, api.UpdateAccountResponse](httpClient, baseURL, AccountServiceUpdateAccountProcedure, opts),
		deleteAccount:     newClient[api.DeleteAccountRequest, api.DeleteAccountResponse](httpClient, baseURL, AccountServiceDeleteAccountProcedure, opts),
		listAccounts:      newClient[api.ListAccountsRequest, api.ListAccountsResponse](httpClient, baseURL, AccountServiceListAccountsProcedure, opts),
		getBalance:        newClient[api.GetBalanceRequest, api.GetBalanceResponse](httpClient, baseURL, AccountServiceGetBalanceProcedure, opts),
		getBalanceHistory: newClient[api.GetBalanceHistoryRequest, api.GetBalanceHistoryResponse](httpClient, baseURL, AccountServiceGetBalanceHistoryProcedure, opts),
		getNetWorth:       newClient[api.GetNetWorthRequest, api.GetNetWorthResponse](httpClient, baseURL, AccountServiceGetNetWorthProcedure, opts),
		createCategory:    newClient[api.CreateCategoryRequest, api.CreateCategoryResponse](httpClient, baseURL, AccountServiceCreateCategoryProcedure, opts),
		listCategories:    newClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL, AccountServiceListCategoriesProcedure, opts),
	}
}

func (c *accountServiceClient) CreateAccount(ctx context.Context, req *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	return c.createAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	return c.updateAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	return c.listAccounts.CallUnary(ctx, req)
}

func (c *accountServiceClient) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

func (c *accountServiceClient) GetBalanceHistory(ctx context.Context, req *connect.Request[api.GetBalanceHistoryRequest]) (*connect.Response[api.GetBalanceHistoryResponse], error) {
	return c.getBalanceHistory.CallUnary(ctx, req)
}

func (c *accountServiceClient) GetNetWorth(ctx context.Context, req *connect.Request[api.GetNetWorthRequest]) (*connect.Response[api.GetNetWorthResponse], error) {
	return c.getNetWorth.CallUnary(ctx, req)
}

func (c *accountServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *accountServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}
