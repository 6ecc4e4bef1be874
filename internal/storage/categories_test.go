package storage

import (
	"context"
	"errors"
	"testing"

	"kakeibo/internal/common"
	"kakeibo/internal/model"
)

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name      string
		catName   string
		icon      string
		color     string
		wantIcon  string
		wantColor string
		wantErr   bool
	}{
		{
			name:      "defaults applied for empty icon and color",
			catName:   "Food",
			wantIcon:  model.DefaultCategoryIcon,
			wantColor: model.DefaultCategoryColor,
		},
		{
			name:      "explicit icon and color preserved",
			catName:   "Travel",
			icon:      "✈️",
			color:     "#FF6B6B",
			wantIcon:  "✈️",
			wantColor: "#FF6B6B",
		},
		{
			name:    "empty name rejected",
			catName: "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			ctx := context.Background()
			cat, err := store.CreateCategory(ctx, tt.catName, tt.icon, tt.color)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCategory failed: %v", err)
			}
			if cat.ID <= 0 {
				t.Errorf("Expected positive id, got %d", cat.ID)
			}
			if cat.Icon != tt.wantIcon || cat.Color != tt.wantColor {
				t.Errorf("Got icon=%q color=%q, want icon=%q color=%q",
					cat.Icon, cat.Color, tt.wantIcon, tt.wantColor)
			}
		})
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := store.CreateCategory(ctx, "Food", "", ""); err != nil {
		t.Fatalf("First CreateCategory failed: %v", err)
	}

	_, err := store.CreateCategory(ctx, "Food", "🍜", "#000000")
	if err == nil {
		t.Fatal("Expected duplicate name to fail")
	}
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}

	// The list still contains exactly one entry with that name.
	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	count := 0
	for _, cat := range categories {
		if cat.Name == "Food" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 category named Food, got %d", count)
	}
}

func TestGetCategories_SortedByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"Transport", "Food", "Rent"} {
		if _, err := store.CreateCategory(ctx, name, "", ""); err != nil {
			t.Fatalf("CreateCategory(%q) failed: %v", name, err)
		}
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}

	want := []string{"Food", "Rent", "Transport"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestGetCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestCategory(t, store, "Food")

	got, err := store.GetCategory(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected category, got nil")
	}
	if got.Name != "Food" {
		t.Errorf("Name = %q, want %q", got.Name, "Food")
	}

	// Absent id returns nil without error.
	missing, err := store.GetCategory(ctx, created.ID+100)
	if err != nil {
		t.Fatalf("GetCategory for missing id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing category, got %+v", missing)
	}
}

func TestUpdateCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestCategory(t, store, "Food")

	if err := store.UpdateCategory(ctx, created.ID, "Groceries", "🛒", "#00FF00"); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}

	got, err := store.GetCategory(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if got.Name != "Groceries" || got.Icon != "🛒" || got.Color != "#00FF00" {
		t.Errorf("Unexpected category after update: %+v", got)
	}
}

func TestUpdateCategory_Missing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.UpdateCategory(context.Background(), 999, "Ghost", "", "")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateCategory_DuplicateName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	createTestCategory(t, store, "Food")
	other := createTestCategory(t, store, "Transport")

	err := store.UpdateCategory(ctx, other.ID, "Food", "", "")
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}
}

func TestDeleteCategory_Unreferenced(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestCategory(t, store, "Food")

	if err := store.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("Expected empty category list, got %d entries", len(categories))
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	created := createTestCategory(t, store, "Food")

	expense := &model.Expense{
		Title:      "Lunch",
		Amount:     1200,
		IsExpense:  true,
		CategoryID: &created.ID,
	}
	if err := store.SaveExpense(ctx, expense); err != nil {
		t.Fatalf("SaveExpense failed: %v", err)
	}

	err := store.DeleteCategory(ctx, created.ID)
	if !errors.Is(err, common.ErrCategoryInUse) {
		t.Fatalf("Expected ErrCategoryInUse, got %v", err)
	}

	// The category survives the refused delete.
	categories, listErr := store.GetCategories(ctx)
	if listErr != nil {
		t.Fatalf("GetCategories failed: %v", listErr)
	}
	if len(categories) != 1 || categories[0].Name != "Food" {
		t.Errorf("Expected Food category to remain, got %+v", categories)
	}

	// Once the referencing expense is gone, the delete succeeds.
	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if err := store.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCategory after removing expense failed: %v", err)
	}
}
