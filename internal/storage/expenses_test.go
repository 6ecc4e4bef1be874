package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"kakeibo/internal/common"
	"kakeibo/internal/model"
)

func TestSaveExpense_JoinedWithCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	cat := createTestCategory(t, store, "Food")

	expense := &model.Expense{
		Title:      "Lunch",
		Amount:     1200,
		IsExpense:  true,
		CategoryID: &cat.ID,
	}
	if err := store.SaveExpense(ctx, expense); err != nil {
		t.Fatalf("SaveExpense failed: %v", err)
	}
	if expense.ID <= 0 {
		t.Errorf("Expected positive id after save, got %d", expense.ID)
	}

	expenses, err := store.GetExpenses(ctx, 1)
	if err != nil {
		t.Fatalf("GetExpenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("Expected 1 expense, got %d", len(expenses))
	}

	got := expenses[0]
	if got.Amount != 1200 {
		t.Errorf("Amount = %v, want 1200", got.Amount)
	}
	if !got.IsExpense {
		t.Error("Expected IsExpense to be true")
	}
	if got.CategoryName != "Food" {
		t.Errorf("CategoryName = %q, want %q", got.CategoryName, "Food")
	}
	if got.CategoryIcon != model.DefaultCategoryIcon {
		t.Errorf("CategoryIcon = %q, want default", got.CategoryIcon)
	}
}

func TestSaveExpense_NullCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	expense := &model.Expense{
		Title:     "Cash gift",
		Amount:    5000,
		IsExpense: false,
	}
	if err := store.SaveExpense(ctx, expense); err != nil {
		t.Fatalf("SaveExpense without category failed: %v", err)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected expense, got nil")
	}
	if got.CategoryID != nil {
		t.Errorf("Expected nil CategoryID, got %v", *got.CategoryID)
	}
	if got.CategoryName != model.UncategorizedName {
		t.Errorf("CategoryName = %q, want %q", got.CategoryName, model.UncategorizedName)
	}
	if got.CategoryIcon != model.DefaultCategoryIcon {
		t.Errorf("CategoryIcon = %q, want default", got.CategoryIcon)
	}
}

func TestSaveExpense_RejectsNonPositiveAmounts(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	for _, amount := range []float64{0, -5} {
		expense := &model.Expense{Title: "Bad", Amount: amount, IsExpense: true}
		err := store.SaveExpense(ctx, expense)
		if !errors.Is(err, common.ErrInvalidAmount) {
			t.Errorf("SaveExpense(amount=%v): expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	// No rows were inserted.
	expenses, err := store.GetExpenses(ctx, 0)
	if err != nil {
		t.Fatalf("GetExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("Expected 0 expenses after rejected inserts, got %d", len(expenses))
	}
}

func TestSaveExpense_SchemaCheckGuard(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Bypass the validation layer: the schema CHECK(amount > 0) is the
	// last-resort guard and must surface as a structured failure.
	_, err := store.db.Exec(
		`INSERT INTO expenses (title, is_expense, amount) VALUES (?, ?, ?)`,
		"Bad", true, 0,
	)
	if wrapped := wrapConstraintError(err); !errors.Is(wrapped, common.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount from CHECK violation, got %v", wrapped)
	}
}

func TestSaveExpense_InvalidCategoryForeignKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	missing := int64(12345)
	expense := &model.Expense{
		Title:      "Orphan",
		Amount:     100,
		IsExpense:  true,
		CategoryID: &missing,
	}
	err := store.SaveExpense(ctx, expense)
	if !errors.Is(err, common.ErrInvalidCategory) {
		t.Errorf("Expected ErrInvalidCategory, got %v", err)
	}
}

func TestSaveExpense_TitleValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrEmptyString,
		},
		{
			name:    "title over display limit",
			title:   "this title is far too long to keep",
			wantErr: ErrTitleTooLong,
		},
		{
			name:  "multibyte title within rune limit",
			title: "コンビニでお昼ごはんを買った", // 14 runes, well over 20 bytes
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := &model.Expense{Title: tt.title, Amount: 500, IsExpense: true}
			err := store.SaveExpense(ctx, expense)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("SaveExpense failed: %v", err)
			}
		})
	}
}

func TestGetExpenses_LimitAndOrdering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of date order to prove the listing sorts.
	for _, day := range []int{2, 5, 1, 4, 3} {
		expense := &model.Expense{
			Title:     "Day",
			Amount:    float64(day * 100),
			IsExpense: true,
			Date:      base.AddDate(0, 0, day-1),
		}
		if err := store.SaveExpense(ctx, expense); err != nil {
			t.Fatalf("SaveExpense failed: %v", err)
		}
	}

	expenses, err := store.GetExpenses(ctx, 3)
	if err != nil {
		t.Fatalf("GetExpenses failed: %v", err)
	}
	if len(expenses) != 3 {
		t.Fatalf("Expected limit of 3 to apply, got %d", len(expenses))
	}

	// Most recent dates first: Mar 5, 4, 3.
	wantAmounts := []float64{500, 400, 300}
	for i, want := range wantAmounts {
		if expenses[i].Amount != want {
			t.Errorf("expenses[%d].Amount = %v, want %v", i, expenses[i].Amount, want)
		}
	}
}

func TestGetExpenses_SameDateOrderedByRecency(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	for _, title := range []string{"first", "second", "third"} {
		expense := &model.Expense{Title: title, Amount: 100, IsExpense: true, Date: date}
		if err := store.SaveExpense(ctx, expense); err != nil {
			t.Fatalf("SaveExpense failed: %v", err)
		}
	}

	expenses, err := store.GetExpenses(ctx, 0)
	if err != nil {
		t.Fatalf("GetExpenses failed: %v", err)
	}
	if len(expenses) != 3 {
		t.Fatalf("Expected 3 expenses, got %d", len(expenses))
	}

	// Ties on date and created_at fall back to insertion recency.
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if expenses[i].Title != title {
			t.Errorf("expenses[%d].Title = %q, want %q", i, expenses[i].Title, title)
		}
	}
}

func TestGetExpense_Missing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	got, err := store.GetExpense(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing expense, got %+v", got)
	}
}

func TestDeleteExpense_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	expense := &model.Expense{Title: "Lunch", Amount: 800, IsExpense: true}
	if err := store.SaveExpense(ctx, expense); err != nil {
		t.Fatalf("SaveExpense failed: %v", err)
	}

	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	// Deleting the same id again is a successful no-op.
	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Errorf("Second DeleteExpense should be a no-op, got %v", err)
	}

	// As is deleting an id that never existed.
	if err := store.DeleteExpense(ctx, 424242); err != nil {
		t.Errorf("DeleteExpense of unknown id should be a no-op, got %v", err)
	}
}

func TestEndToEnd_AddCategoryAndExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	food, err := store.CreateCategory(ctx, "Food", "🍜", "")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	expense := &model.Expense{
		Title:      "Dinner",
		Amount:     3000,
		IsExpense:  true,
		CategoryID: &food.ID,
	}
	if err := store.SaveExpense(ctx, expense); err != nil {
		t.Fatalf("SaveExpense failed: %v", err)
	}

	expenses, err := store.GetExpenses(ctx, 20)
	if err != nil {
		t.Fatalf("GetExpenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("Expected 1 expense, got %d", len(expenses))
	}

	got := expenses[0]
	if got.CategoryName != "Food" || got.CategoryIcon != "🍜" {
		t.Errorf("Joined category = %q/%q, want Food/🍜", got.CategoryName, got.CategoryIcon)
	}
	if formatted := got.FormattedAmount(); formatted != "-¥3000" {
		t.Errorf("FormattedAmount() = %q, want %q", formatted, "-¥3000")
	}
}
