package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kakeibo/internal/model"
)

// DefaultExpenseLimit caps expense listings when the caller does not supply
// a positive limit.
const DefaultExpenseLimit = 50

const expenseColumns = `
	e.id, e.title, e.is_expense, e.amount, e.category_id,
	e.date, e.description, e.created_at, e.updated_at,
	c.name, c.icon`

// SaveExpense inserts a new expense and assigns its id. A zero date defaults
// to today; created_at and updated_at are set by the schema. Constraint
// violations surface as the sentinel errors from internal/common.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	insertQuery := `
		INSERT INTO expenses (title, is_expense, amount, category_id, date, description)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, insertQuery,
		expense.Title,
		expense.IsExpense,
		expense.Amount,
		expense.CategoryID,
		expense.Date.Format("2006-01-02"),
		expense.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", wrapConstraintError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense ID: %w", err)
	}
	expense.ID = id

	slog.Info("saved expense",
		"id", id,
		"title", expense.Title,
		"amount", expense.Amount,
		"is_expense", expense.IsExpense)
	return nil
}

// GetExpenses returns the most recent expenses joined with their category
// name and icon, ordered by date descending and then by insertion recency.
// A limit of zero or less uses DefaultExpenseLimit.
func (s *SQLiteStorage) GetExpenses(ctx context.Context, limit int) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultExpenseLimit
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		ORDER BY e.date DESC, e.created_at DESC, e.id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses), "limit", limit)
	return expenses, nil
}

// GetExpense returns a single expense by id with the same join semantics as
// GetExpenses, or nil when no such expense exists.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.id = ?`

	expense, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Expense not found
	}
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense by id. Deleting an id that does not
// exist is a successful no-op, matching the idempotent-delete convention.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		slog.Debug("delete of missing expense treated as no-op", "id", id)
		return nil
	}

	slog.Info("deleted expense", "id", id)
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanExpense decodes one joined expense row by explicit column position,
// tolerating a missing category on the left join.
func scanExpense(row rowScanner) (*model.Expense, error) {
	var expense model.Expense
	var categoryID sql.NullInt64
	var description, categoryName, categoryIcon sql.NullString

	err := row.Scan(
		&expense.ID,
		&expense.Title,
		&expense.IsExpense,
		&expense.Amount,
		&categoryID,
		&expense.Date,
		&description,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&categoryName,
		&categoryIcon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	if categoryID.Valid {
		expense.CategoryID = &categoryID.Int64
	}
	expense.Description = description.String

	expense.CategoryName = categoryName.String
	if expense.CategoryName == "" {
		expense.CategoryName = model.UncategorizedName
	}
	expense.CategoryIcon = categoryIcon.String
	if expense.CategoryIcon == "" {
		expense.CategoryIcon = model.DefaultCategoryIcon
	}

	return &expense, nil
}
