package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"kakeibo/internal/common"
	"kakeibo/internal/model"
)

// GetCategories returns all categories sorted by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, icon, color
		FROM categories
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var icon, color sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Name, &icon, &color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Icon = icon.String
		cat.Color = color.String
		cat.ApplyDefaults()
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategory returns a category by its id, or nil when no such category exists.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, icon, color
		FROM categories
		WHERE id = ?`

	var cat model.Category
	var icon, color sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name, &icon, &color)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	cat.Icon = icon.String
	cat.Color = color.String
	cat.ApplyDefaults()
	return &cat, nil
}

// CreateCategory creates a new category. Empty icon or color fall back to
// the standard defaults. A name collision surfaces as common.ErrDuplicateEntry
// wrapped with the driver's message.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, icon, color string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	category := model.Category{
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	category.ApplyDefaults()

	insertQuery := `
		INSERT INTO categories (name, icon, color)
		VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, insertQuery, category.Name, category.Icon, category.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", wrapConstraintError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}
	category.ID = id

	slog.Info("created new category", "name", name, "id", id)
	return &category, nil
}

// UpdateCategory changes a category's name, icon, and color. The id is
// immutable. Returns common.ErrNotFound when the category does not exist.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id int64, name, icon, color string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	category := model.Category{
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	category.ApplyDefaults()

	updateQuery := `
		UPDATE categories
		SET name = ?, icon = ?, color = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, updateQuery, category.Name, category.Icon, category.Color, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", wrapConstraintError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	slog.Info("updated category", "id", id, "name", name)
	return nil
}

// DeleteCategory deletes a category, refusing when any expense still
// references it. The count check and the delete run in one transaction so
// the observable outcome matches the guard: the delete never happens while
// a referencing expense exists at check time.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE category_id = ?`
	if err := tx.QueryRowContext(ctx, countQuery, id).Scan(&count); err != nil {
		return fmt.Errorf("failed to count referencing expenses: %w", err)
	}

	if count > 0 {
		return fmt.Errorf("%w: %d expense(s) reference category %d", common.ErrCategoryInUse, count, id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category delete: %w", err)
	}

	slog.Info("deleted category", "id", id)
	return nil
}
