// Package api defines the request and response messages of the fintrack RPC
// services. Amounts are decimal strings on the wire; dates are YYYY-MM-DD.
package api

import "github.com/shopspring/decimal"

type Currency struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Symbol    string          `json:"symbol"`
	Decimals  int32           `json:"decimals"`
	Rate      decimal.Decimal `json:"rate"`
	IsBase    bool            `json:"is_base"`
	CreatedAt int64           `json:"created_at"`
}

type CreateCurrencyRequest struct {
	Code     string          `json:"code"`
	Symbol   string          `json:"symbol,omitempty"`
	Decimals *int32          `json:"decimals,omitempty"`
	Rate     decimal.Decimal `json:"rate"`
	IsBase   bool            `json:"is_base,omitempty"`
}

type CreateCurrencyResponse struct {
	Currency Currency `json:"currency"`
}

type UpdateCurrencyRequest struct {
	ID       string           `json:"id"`
	Code     *string          `json:"code,omitempty"`
	Symbol   *string          `json:"symbol,omitempty"`
	Decimals *int32           `json:"decimals,omitempty"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
	IsBase   *bool            `json:"is_base,omitempty"`
}

type UpdateCurrencyResponse struct {
	Currency Currency `json:"currency"`
}

type DeleteCurrencyRequest struct {
	ID string `json:"id"`
}

type DeleteCurrencyResponse struct{}

type ListCurrenciesRequest struct{}

type ListCurrenciesResponse struct {
	Currencies []Currency `json:"currencies"`
}

type SetBaseCurrencyRequest struct {
	ID string `json:"id"`
}

// SetBaseCurrencyResponse returns the whole re-based rate table.
type SetBaseCurrencyResponse struct {
	Base       Currency   `json:"base"`
	Currencies []Currency `json:"currencies"`
}

// ConvertRequest converts Amount; an empty ToCurrencyID means the base currency.
type ConvertRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	FromCurrencyID string          `json:"from_currency_id"`
	ToCurrencyID   string          `json:"to_currency_id,omitempty"`
}

// ConvertResponse carries no currency when converting to a missing base.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  *Currency       `json:"currency,omitempty"`
	Formatted string          `json:"formatted,omitempty"`
}

type DebtDetails struct {
	DebtType     string          `json:"debt_type"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	DueDate      string          `json:"due_date,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	IsPaidOff    bool            `json:"is_paid_off"`
}

type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CurrencyID     string          `json:"currency_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	IsActive       bool            `json:"is_active"`
	Debt           *DebtDetails    `json:"debt,omitempty"`
	CreatedAt      int64           `json:"created_at"`
}

type CreateAccountRequest struct {
	Name           string          `json:"name"`
	CurrencyID     string          `json:"currency_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type CreateAccountResponse struct {
	Account Account `json:"account"`
}

// UpdateAccountRequest changes the non-nil fields. An empty DueDate clears it.
type UpdateAccountRequest struct {
	ID             string           `json:"id"`
	Name           *string          `json:"name,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
	CurrencyID     *string          `json:"currency_id,omitempty"`
	TargetAmount   *decimal.Decimal `json:"target_amount,omitempty"`
	DueDate        *string          `json:"due_date,omitempty"`
	Counterparty   *string          `json:"counterparty,omitempty"`
}

type UpdateAccountResponse struct {
	Account Account `json:"account"`
}

type DeleteAccountRequest struct {
	ID string `json:"id"`
}

type DeleteAccountResponse struct{}

type ListAccountsRequest struct {
	Type            string `json:"type,omitempty"`
	CurrencyID      string `json:"currency_id,omitempty"`
	IncludeInactive bool   `json:"include_inactive,omitempty"`
}

type ListAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type GetBalanceRequest struct {
	AccountID string `json:"account_id"`
}

type GetBalanceResponse struct {
	AccountID    string           `json:"account_id"`
	Balance      decimal.Decimal  `json:"balance"`
	Currency     Currency         `json:"currency"`
	Formatted    string           `json:"formatted"`
	BaseBalance  *decimal.Decimal `json:"base_balance,omitempty"`
	BaseCurrency *Currency        `json:"base_currency,omitempty"`
}

// GetBalanceHistoryRequest covers every active regular account when AccountIDs is empty.
type GetBalanceHistoryRequest struct {
	AccountIDs []string `json:"account_ids,omitempty"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

type HistorySeries struct {
	Name string    `json:"name"`
	Type string    `json:"type"`
	Data []float64 `json:"data"`
}

type GetBalanceHistoryResponse struct {
	Dates    []string        `json:"dates"`
	Series   []HistorySeries `json:"series"`
	Currency string          `json:"currency"`
}

type GetNetWorthRequest struct{}

type GetNetWorthResponse struct {
	BaseCurrency  *Currency       `json:"base_currency,omitempty"`
	AccountsTotal decimal.Decimal `json:"accounts_total"`
	DebtsImpact   decimal.Decimal `json:"debts_impact"`
	Total         decimal.Decimal `json:"total"`
	Formatted     string          `json:"formatted,omitempty"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CreatedAt int64  `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type CreateCategoryResponse struct {
	Category Category `json:"category"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type Transaction struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	AccountID    string           `json:"account_id"`
	Amount       decimal.Decimal  `json:"amount"`
	ToAccountID  string           `json:"to_account_id,omitempty"`
	ToAmount     *decimal.Decimal `json:"to_amount,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
	CategoryID   string           `json:"category_id,omitempty"`
	Date         string           `json:"date"`
	Description  string           `json:"description,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	CreatedAt    int64            `json:"created_at"`
}

// TransactionInput is shared by create and update.
type TransactionInput struct {
	Type        string           `json:"type"`
	AccountID   string           `json:"account_id"`
	ToAccountID string           `json:"to_account_id,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	ToAmount    *decimal.Decimal `json:"to_amount,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	Date        string           `json:"date,omitempty"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

type CreateTransactionRequest struct {
	TransactionInput
}

type CreateTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

// UpdateTransactionRequest replaces every field of the transaction. Type may
// be left empty; it cannot change.
type UpdateTransactionRequest struct {
	ID string `json:"id"`
	TransactionInput
}

type UpdateTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct{}

type ListTransactionsRequest struct {
	AccountIDs []string `json:"account_ids,omitempty"`
	Types      []string `json:"types,omitempty"`
	CategoryID string   `json:"category_id,omitempty"`
	Tag        string   `json:"tag,omitempty"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type DebtSummary struct {
	Debt      Account         `json:"debt"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  decimal.Decimal `json:"progress"`
	IsPaidOff bool            `json:"is_paid_off"`
}

type CreateDebtRequest struct {
	Name         string          `json:"name"`
	CurrencyID   string          `json:"currency_id"`
	DebtType     string          `json:"debt_type"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	DueDate      string          `json:"due_date,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
}

type CreateDebtResponse struct {
	Debt Account `json:"debt"`
}

type PayDebtRequest struct {
	DebtID        string          `json:"debt_id"`
	FromAccountID string          `json:"from_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date,omitempty"`
	Description   string          `json:"description,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

type PayDebtResponse struct {
	Transaction Transaction `json:"transaction"`
	Debt        DebtSummary `json:"debt"`
}

type CollectDebtRequest struct {
	DebtID      string          `json:"debt_id"`
	ToAccountID string          `json:"to_account_id"`
	DebtAmount  decimal.Decimal `json:"debt_amount"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

type CollectDebtResponse struct {
	Transaction Transaction `json:"transaction"`
	Debt        DebtSummary `json:"debt"`
}

type ReopenDebtRequest struct {
	DebtID string `json:"debt_id"`
}

type ReopenDebtResponse struct {
	Debt Account `json:"debt"`
}

type GetDebtRequest struct {
	DebtID string `json:"debt_id"`
}

type GetDebtResponse struct {
	Debt DebtSummary `json:"debt"`
}

type ListDebtsRequest struct{}

type ListDebtsResponse struct {
	Debts []DebtSummary `json:"debts"`
}

type DeleteDebtRequest struct {
	DebtID string `json:"debt_id"`
}

type DeleteDebtResponse struct{}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}
