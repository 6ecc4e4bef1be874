// Package viewmodel holds the UI-facing state and the synchronization
// protocol between the presentation layer and storage. View-models are the
// only components that mutate their state; after every successful mutation
// they reload the authoritative list from the store instead of patching
// local state optimistically.
package viewmodel

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"kakeibo/internal/common"
	"kakeibo/internal/model"
	"kakeibo/internal/service"
)

// MaxTitleLength bounds record titles, counted in display characters.
const MaxTitleLength = 20

// RecordsViewModel drives the record (expense/income) screen: the joined
// record list, the add-record form, and record deletion.
type RecordsViewModel struct {
	store     service.Storage
	notifier  service.Notifier
	confirmer service.Confirmer

	// Reactive state read by the presentation layer.
	Categories []model.Category
	Records    []model.Expense
	IsLoading  bool

	// Form fields.
	Title       string
	Amount      string
	Description string
	CategoryID  int64 // 0 means uncategorized
	IsExpense   bool

	// Limit for record listings; zero uses the store default.
	Limit int
}

// NewRecordsViewModel creates a records view-model bound to its collaborators.
func NewRecordsViewModel(store service.Storage, notifier service.Notifier, confirmer service.Confirmer) *RecordsViewModel {
	return &RecordsViewModel{
		store:     store,
		notifier:  notifier,
		confirmer: confirmer,
		IsExpense: true,
	}
}

// LoadCategories refreshes the category list from the store. A read failure
// degrades to an empty list plus a reported error; the UI keeps functioning.
func (vm *RecordsViewModel) LoadCategories(ctx context.Context) {
	categories, err := vm.store.GetCategories(ctx)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		vm.Categories = nil
		vm.notifier.Alert("Failed to load categories")
		return
	}
	vm.Categories = categories
}

// LoadRecords refreshes the record list from the store, same degradation
// semantics as LoadCategories.
func (vm *RecordsViewModel) LoadRecords(ctx context.Context) {
	records, err := vm.store.GetExpenses(ctx, vm.Limit)
	if err != nil {
		slog.Error("failed to load records", "error", err)
		vm.Records = nil
		vm.notifier.Alert("Failed to load records")
		return
	}
	vm.Records = records
}

// AddRecord validates the form, persists a new record, and reloads the list.
// Validation failures are reported before any store call; store failures are
// surfaced verbatim. The busy flag is cleared on every path that sets it.
func (vm *RecordsViewModel) AddRecord(ctx context.Context) {
	title := strings.TrimSpace(vm.Title)
	if title == "" {
		vm.notifier.Alert("Please enter a title")
		return
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		vm.notifier.Alert("Title must be 20 characters or less")
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(vm.Amount), 64)
	if err != nil || amount <= 0 {
		vm.notifier.Alert("Please enter a positive amount")
		return
	}

	if len(vm.Categories) == 0 {
		vm.notifier.Alert("Add a category before recording")
		return
	}

	expense := &model.Expense{
		Title:       title,
		Amount:      amount,
		IsExpense:   vm.IsExpense,
		Description: strings.TrimSpace(vm.Description),
	}
	if vm.CategoryID > 0 {
		id := vm.CategoryID
		expense.CategoryID = &id
	}

	vm.IsLoading = true
	defer func() { vm.IsLoading = false }()

	if err := vm.store.SaveExpense(ctx, expense); err != nil {
		slog.Error("failed to add record", "error", err)
		vm.notifier.Alert("Error: " + common.UserMessage(err))
		return
	}

	vm.resetForm()
	vm.LoadRecords(ctx)
	vm.notifier.Alert("Record added")
}

// DeleteRecord asks for confirmation, deletes the record, and reloads the
// list. Declining the confirmation makes no store call.
func (vm *RecordsViewModel) DeleteRecord(ctx context.Context, id int64) {
	if !vm.confirmer.Confirm("Delete this record?") {
		return
	}

	vm.IsLoading = true
	defer func() { vm.IsLoading = false }()

	if err := vm.store.DeleteExpense(ctx, id); err != nil {
		slog.Error("failed to delete record", "id", id, "error", err)
		vm.notifier.Alert("Error: " + common.UserMessage(err))
		return
	}

	vm.LoadRecords(ctx)
	vm.notifier.Alert("Record deleted")
}

// resetForm clears the transient form fields after a successful add. The
// expense/income toggle keeps its last value.
func (vm *RecordsViewModel) resetForm() {
	vm.Title = ""
	vm.Amount = ""
	vm.Description = ""
	vm.CategoryID = 0
}
