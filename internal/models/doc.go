// Package models defines the core domain models for the household ledger.
//
// # Ledger Models
//
//   - Currency: a currency with its rate against the household base currency
//   - Account: a named store of value in one currency, either regular or debt
//   - Transaction: a posted ledger event of one of five kinds
//   - Category: an income or expense classification for transactions
//
// # Design Principles
//
//  1. Balances are never stored: they are derived by replaying transactions.
//  2. Amounts and rates are exact decimals (shopspring/decimal), never floats.
//  3. Relationships use ID strings instead of pointers.
//  4. A debt is an Account whose Debt field is set; regular accounts leave it nil.
package models
