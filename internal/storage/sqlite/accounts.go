package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

const accountColumns = `id, name, type, currency_id, initial_balance, is_active,
	debt_type, target_amount, due_date, counterparty, is_paid_off, created_at`

// CreateAccount persists a new account. Debt columns are written only for debt accounts.
func (s *SQLiteStore) CreateAccount(ctx context.Context, a *models.Account) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}

	debtType, target, dueDate, counterparty, paidOff := debtColumns(a)
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO accounts ("+accountColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.Name, string(a.Type), a.CurrencyID, a.InitialBalance, boolToInt(a.IsActive),
		debtType, target, dueDate, counterparty, paidOff, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetAccount retrieves a non-removed account by ID.
func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	a, err := scanAccount(s.q.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ? AND removed_at IS NULL", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("account", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// ListAccounts returns non-removed accounts matching filter, ordered by name.
func (s *SQLiteStore) ListAccounts(ctx context.Context, filter storage.AccountFilter) ([]models.Account, error) {
	filter.IncludeRemoved = false
	where, args := accountWhere(filter)
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE "+where+" ORDER BY name, created_at", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// CountAccounts counts accounts matching filter.
func (s *SQLiteStore) CountAccounts(ctx context.Context, filter storage.AccountFilter) (int, error) {
	where, args := accountWhere(filter)
	var n int
	if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE "+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

// UpdateAccount overwrites every mutable column of an account.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, a *models.Account) error {
	debtType, target, dueDate, counterparty, paidOff := debtColumns(a)
	res, err := s.q.ExecContext(ctx,
		`UPDATE accounts SET name = ?, type = ?, currency_id = ?, initial_balance = ?, is_active = ?,
		 debt_type = ?, target_amount = ?, due_date = ?, counterparty = ?, is_paid_off = ?
		 WHERE id = ? AND removed_at IS NULL`,
		a.Name, string(a.Type), a.CurrencyID, a.InitialBalance, boolToInt(a.IsActive),
		debtType, target, dueDate, counterparty, paidOff, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return expectOneRow(res, "account", a.ID)
}

// RemoveAccount soft-removes an account.
func (s *SQLiteStore) RemoveAccount(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx,
		"UPDATE accounts SET removed_at = ?, is_active = 0 WHERE id = ? AND removed_at IS NULL",
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}
	return expectOneRow(res, "account", id)
}

func accountWhere(filter storage.AccountFilter) (string, []any) {
	clauses := []string{"1 = 1"}
	var args []any
	if !filter.IncludeRemoved {
		clauses = append(clauses, "removed_at IS NULL")
	}
	if !filter.IncludeInactive {
		clauses = append(clauses, "is_active = 1")
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.CurrencyID != "" {
		clauses = append(clauses, "currency_id = ?")
		args = append(args, filter.CurrencyID)
	}
	return strings.Join(clauses, " AND "), args
}

func debtColumns(a *models.Account) (debtType, target, dueDate, counterparty any, paidOff int) {
	if a.Type != models.AccountDebt || a.Debt == nil {
		return nil, nil, nil, nil, 0
	}
	debtType = string(a.Debt.DebtType)
	target = a.Debt.TargetAmount
	if a.Debt.DueDate != nil {
		dueDate = a.Debt.DueDate.Format(calculator.DateFormat)
	}
	counterparty = nullString(a.Debt.Counterparty)
	return debtType, target, dueDate, counterparty, boolToInt(a.Debt.IsPaidOff)
}

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var (
		accountType  string
		isActive     int
		debtType     sql.NullString
		target       decimal.NullDecimal
		dueDate      sql.NullString
		counterparty sql.NullString
		paidOff      int
	)
	if err := row.Scan(&a.ID, &a.Name, &accountType, &a.CurrencyID, &a.InitialBalance, &isActive,
		&debtType, &target, &dueDate, &counterparty, &paidOff, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Type = models.AccountType(accountType)
	a.IsActive = isActive == 1

	if a.Type == models.AccountDebt {
		a.Debt = &models.DebtDetails{
			DebtType:     models.DebtType(debtType.String),
			TargetAmount: target.Decimal,
			Counterparty: counterparty.String,
			IsPaidOff:    paidOff == 1,
		}
		if dueDate.Valid {
			due, err := time.Parse(calculator.DateFormat, dueDate.String)
			if err != nil {
				return nil, fmt.Errorf("invalid due date %q: %w", dueDate.String, err)
			}
			a.Debt.DueDate = &due
		}
	}
	return a, nil
}
