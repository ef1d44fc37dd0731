package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

const transactionColumns = `id, type, account_id, amount, to_account_id, to_amount,
	exchange_rate, category_id, date, description, created_at, seq`

// CreateTransaction persists a new transaction and its tags. A zero Seq is
// assigned after every stored transaction; a set Seq is kept.
// Callers that also touch other rows should run it inside InTx.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	if t.Seq == 0 {
		err := s.q.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM transactions").Scan(&t.Seq)
		if err != nil {
			return fmt.Errorf("failed to assign transaction seq: %w", err)
		}
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transactionArgs(t)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := s.insertTags(ctx, t.ID, t.Tags); err != nil {
		return err
	}
	return nil
}

// GetTransaction retrieves a transaction by ID, including its tags.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	t, err := scanTransaction(s.q.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("transaction", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	tags, err := s.loadTags(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	t.Tags = tags[id]
	return t, nil
}

// ListTransactions returns transactions matching filter ordered by date, then posting order.
func (s *SQLiteStore) ListTransactions(ctx context.Context, filter storage.TransactionFilter) ([]models.Transaction, error) {
	where, args := transactionWhere(filter)
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE "+where+" ORDER BY date, seq", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var (
		txs []models.Transaction
		ids []string
	)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return txs, nil
	}
	tags, err := s.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		txs[i].Tags = tags[txs[i].ID]
	}
	return txs, nil
}

// CountTransactions counts transactions matching filter.
func (s *SQLiteStore) CountTransactions(ctx context.Context, filter storage.TransactionFilter) (int, error) {
	where, args := transactionWhere(filter)
	var n int
	if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions WHERE "+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}

// DeleteTransaction removes a transaction; its tags cascade.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(res, "transaction", id)
}

func transactionArgs(t *models.Transaction) []any {
	var toAmount, rate any
	if t.ToAmount != nil {
		toAmount = *t.ToAmount
	}
	if t.ExchangeRate != nil {
		rate = *t.ExchangeRate
	}
	return []any{
		t.ID, string(t.Type), t.AccountID, t.Amount, nullString(t.ToAccountID), toAmount,
		rate, nullString(t.CategoryID), t.Date.Format(calculator.DateFormat), t.Description, t.CreatedAt, t.Seq,
	}
}

func transactionWhere(f storage.TransactionFilter) (string, []any) {
	clauses := []string{"1 = 1"}
	var args []any

	if len(f.AccountIDs) > 0 {
		ph := placeholders(len(f.AccountIDs))
		clauses = append(clauses, "(account_id IN ("+ph+") OR to_account_id IN ("+ph+"))")
		for range 2 {
			for _, id := range f.AccountIDs {
				args = append(args, id)
			}
		}
	}
	if f.ToAccountID != "" {
		clauses = append(clauses, "to_account_id = ?")
		args = append(args, f.ToAccountID)
	}
	if len(f.Types) > 0 {
		clauses = append(clauses, "type IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}
	if f.CategoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Tag != "" {
		clauses = append(clauses, "id IN (SELECT transaction_id FROM transaction_tags WHERE tag = ?)")
		args = append(args, f.Tag)
	}
	if !f.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, f.From.Format(calculator.DateFormat))
	}
	if !f.To.IsZero() {
		clauses = append(clauses, "date <= ?")
		args = append(args, f.To.Format(calculator.DateFormat))
	}
	return strings.Join(clauses, " AND "), args
}

func (s *SQLiteStore) insertTags(ctx context.Context, id string, tags []string) error {
	for _, tag := range tags {
		_, err := s.q.ExecContext(ctx,
			"INSERT OR IGNORE INTO transaction_tags (transaction_id, tag) VALUES (?, ?)", id, tag)
		if err != nil {
			return fmt.Errorf("failed to insert transaction tag: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadTags(ctx context.Context, ids []string) (map[string][]string, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.q.QueryContext(ctx,
		"SELECT transaction_id, tag FROM transaction_tags WHERE transaction_id IN ("+placeholders(len(ids))+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan transaction tag: %w", err)
		}
		tags[id] = append(tags[id], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction tags: %w", err)
	}
	for id := range tags {
		sort.Strings(tags[id])
	}
	return tags, nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var (
		txType      string
		toAccountID sql.NullString
		toAmount    decimal.NullDecimal
		rate        decimal.NullDecimal
		categoryID  sql.NullString
		date        string
	)
	if err := row.Scan(&t.ID, &txType, &t.AccountID, &t.Amount, &toAccountID, &toAmount,
		&rate, &categoryID, &date, &t.Description, &t.CreatedAt, &t.Seq); err != nil {
		return nil, err
	}
	t.Type = models.TransactionType(txType)
	t.ToAccountID = toAccountID.String
	t.CategoryID = categoryID.String
	if toAmount.Valid {
		v := toAmount.Decimal
		t.ToAmount = &v
	}
	if rate.Valid {
		v := rate.Decimal
		t.ExchangeRate = &v
	}
	parsed, err := time.Parse(calculator.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction date %q: %w", date, err)
	}
	t.Date = parsed
	return t, nil
}
