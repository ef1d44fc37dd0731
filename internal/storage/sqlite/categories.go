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

// CreateCategory persists a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO categories (id, name, kind, created_at) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, string(c.Kind), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	c := &models.Category{}
	var kind string
	err := s.q.QueryRowContext(ctx,
		"SELECT id, name, kind, created_at FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &kind, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	c.Kind = models.CategoryKind(kind)
	return c, nil
}

// ListCategories returns every category ordered by kind and name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, name, kind, created_at FROM categories ORDER BY kind, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var (
			c    models.Category
			kind string
		)
		if err := rows.Scan(&c.ID, &c.Name, &kind, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Kind = models.CategoryKind(kind)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
