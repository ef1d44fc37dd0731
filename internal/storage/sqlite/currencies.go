package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fintrack/internal/models"
)

const currencyColumns = "id, code, symbol, decimals, rate, is_base, created_at"

// CreateCurrency persists a new currency.
func (s *SQLiteStore) CreateCurrency(ctx context.Context, c *models.Currency) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO currencies ("+currencyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.Code, c.Symbol, c.Decimals, c.Rate, boolToInt(c.IsBase), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert currency: %w", err)
	}
	return nil
}

// GetCurrency retrieves a currency by ID.
func (s *SQLiteStore) GetCurrency(ctx context.Context, id string) (*models.Currency, error) {
	c, err := scanCurrency(s.q.QueryRowContext(ctx,
		"SELECT "+currencyColumns+" FROM currencies WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("currency", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return c, nil
}

// GetCurrencyByCode retrieves a currency by its unique code.
func (s *SQLiteStore) GetCurrencyByCode(ctx context.Context, code string) (*models.Currency, error) {
	c, err := scanCurrency(s.q.QueryRowContext(ctx,
		"SELECT "+currencyColumns+" FROM currencies WHERE code = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("currency", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return c, nil
}

// GetBaseCurrency returns the base currency, or nil if none is configured.
func (s *SQLiteStore) GetBaseCurrency(ctx context.Context) (*models.Currency, error) {
	c, err := scanCurrency(s.q.QueryRowContext(ctx,
		"SELECT "+currencyColumns+" FROM currencies WHERE is_base = 1"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get base currency: %w", err)
	}
	return c, nil
}

// ListCurrencies returns every currency ordered by code.
func (s *SQLiteStore) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT "+currencyColumns+" FROM currencies ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []models.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate currencies: %w", err)
	}
	return currencies, nil
}

// UpdateCurrency overwrites code, symbol, decimals, rate and base flag.
func (s *SQLiteStore) UpdateCurrency(ctx context.Context, c *models.Currency) error {
	res, err := s.q.ExecContext(ctx,
		"UPDATE currencies SET code = ?, symbol = ?, decimals = ?, rate = ?, is_base = ? WHERE id = ?",
		c.Code, c.Symbol, c.Decimals, c.Rate, boolToInt(c.IsBase), c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency: %w", err)
	}
	return expectOneRow(res, "currency", c.ID)
}

// DeleteCurrency removes a currency by ID.
func (s *SQLiteStore) DeleteCurrency(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM currencies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete currency: %w", err)
	}
	return expectOneRow(res, "currency", id)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCurrency(row rowScanner) (*models.Currency, error) {
	c := &models.Currency{}
	var isBase int
	if err := row.Scan(&c.ID, &c.Code, &c.Symbol, &c.Decimals, &c.Rate, &isBase, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.IsBase = isBase == 1
	return c, nil
}

func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}
