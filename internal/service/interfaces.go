// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"kakeibo/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, name, icon, color string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, icon, color string) error
	DeleteCategory(ctx context.Context, id int64) error

	// Expense operations
	SaveExpense(ctx context.Context, expense *model.Expense) error
	GetExpenses(ctx context.Context, limit int) ([]model.Expense, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Notifier delivers user-facing messages. The presentation layer renders
// them as alerts or toasts.
type Notifier interface {
	Alert(message string)
}

// Confirmer asks the user to approve a destructive action before it runs.
type Confirmer interface {
	Confirm(prompt string) bool
}
