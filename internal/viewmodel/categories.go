package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"kakeibo/internal/common"
	"kakeibo/internal/model"
	"kakeibo/internal/service"
)

// CategoriesViewModel drives the category settings screen: the sorted
// category list, the add form, and in-place editing.
type CategoriesViewModel struct {
	store     service.Storage
	notifier  service.Notifier
	confirmer service.Confirmer

	// Reactive state read by the presentation layer.
	Categories []model.Category
	IsLoading  bool

	// Add form.
	NewName  string
	NewIcon  string
	NewColor string

	// Editing state.
	EditName  string
	EditIcon  string
	EditColor string
	EditID    int64
	IsEditing bool
}

// NewCategoriesViewModel creates a categories view-model bound to its collaborators.
func NewCategoriesViewModel(store service.Storage, notifier service.Notifier, confirmer service.Confirmer) *CategoriesViewModel {
	return &CategoriesViewModel{
		store:     store,
		notifier:  notifier,
		confirmer: confirmer,
	}
}

// Load refreshes the category list from the store. Read failures degrade to
// an empty list plus a reported error.
func (vm *CategoriesViewModel) Load(ctx context.Context) {
	categories, err := vm.store.GetCategories(ctx)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		vm.Categories = nil
		vm.notifier.Alert("Failed to load categories")
		return
	}
	vm.Categories = categories
}

// Add validates the form, creates the category, and reloads the list. A
// store-level name collision is surfaced with the store's message.
func (vm *CategoriesViewModel) Add(ctx context.Context) {
	name := strings.TrimSpace(vm.NewName)
	if name == "" {
		vm.notifier.Alert("Please enter a category name")
		return
	}

	vm.IsLoading = true
	defer func() { vm.IsLoading = false }()

	if _, err := vm.store.CreateCategory(ctx, name, vm.NewIcon, vm.NewColor); err != nil {
		slog.Error("failed to add category", "name", name, "error", err)
		vm.notifier.Alert("Error: " + common.UserMessage(err))
		return
	}

	vm.NewName = ""
	vm.NewIcon = ""
	vm.NewColor = ""
	vm.Load(ctx)
	vm.notifier.Alert("Category added")
}

// BeginEdit switches the view-model into editing mode for one category.
func (vm *CategoriesViewModel) BeginEdit(cat model.Category) {
	vm.EditID = cat.ID
	vm.EditName = cat.Name
	vm.EditIcon = cat.Icon
	vm.EditColor = cat.Color
	vm.IsEditing = true
}

// SaveEdit validates and persists the pending edit, then reloads the list.
func (vm *CategoriesViewModel) SaveEdit(ctx context.Context) {
	name := strings.TrimSpace(vm.EditName)
	if name == "" {
		vm.notifier.Alert("Please enter a category name")
		return
	}

	vm.IsLoading = true
	defer func() { vm.IsLoading = false }()

	if err := vm.store.UpdateCategory(ctx, vm.EditID, name, vm.EditIcon, vm.EditColor); err != nil {
		slog.Error("failed to update category", "id", vm.EditID, "error", err)
		vm.notifier.Alert("Error: " + common.UserMessage(err))
		return
	}

	vm.CancelEdit()
	vm.Load(ctx)
	vm.notifier.Alert("Category updated")
}

// CancelEdit leaves editing mode without touching storage.
func (vm *CategoriesViewModel) CancelEdit() {
	vm.IsEditing = false
	vm.EditID = 0
	vm.EditName = ""
	vm.EditIcon = ""
	vm.EditColor = ""
}

// Delete asks for confirmation and deletes the category. The referential
// guard in the store refuses the delete while any record references it; that
// domain error reaches the user unchanged.
func (vm *CategoriesViewModel) Delete(ctx context.Context, cat model.Category) {
	if !vm.confirmer.Confirm("Delete category \"" + cat.Name + "\"?") {
		return
	}

	vm.IsLoading = true
	defer func() { vm.IsLoading = false }()

	if err := vm.store.DeleteCategory(ctx, cat.ID); err != nil {
		slog.Error("failed to delete category", "id", cat.ID, "error", err)
		vm.notifier.Alert("Error: " + common.UserMessage(err))
		return
	}

	vm.Load(ctx)
	vm.notifier.Alert("Category deleted")
}
