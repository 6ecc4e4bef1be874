// Package storage provides the data persistence layer for the kakeibo application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"kakeibo/internal/common"
	"kakeibo/internal/model"
)

// MaxTitleLength is the longest expense title the store accepts, counted in
// display characters rather than bytes.
const MaxTitleLength = 20

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidID    = errors.New("id must be positive")
	ErrTitleTooLong = errors.New("title exceeds maximum length")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a surrogate key is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateExpense validates an expense before it is persisted. The schema
// CHECK(amount > 0) remains the last-resort guard; rejecting here avoids a
// round trip for inputs the caller failed to validate.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if err := validateString(expense.Title, "title"); err != nil {
		return err
	}
	if utf8.RuneCountInString(expense.Title) > MaxTitleLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrTitleTooLong, utf8.RuneCountInString(expense.Title), MaxTitleLength)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: %v", common.ErrInvalidAmount, expense.Amount)
	}
	if expense.CategoryID != nil && *expense.CategoryID <= 0 {
		return fmt.Errorf("%w: category_id", ErrInvalidID)
	}
	return nil
}
