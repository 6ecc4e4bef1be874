package viewmodel

import (
	"context"
	"fmt"

	"kakeibo/internal/model"
)

// fakeStore implements service.Storage in memory and records which
// operations ran, so tests can assert the sync protocol: no store calls on
// validation failure, reload after every successful mutation.
type fakeStore struct {
	categories []model.Category
	expenses   []model.Expense
	calls      []string
	nextID     int64

	failGetCategories error
	failGetExpenses   error
	failSave          error
	failDeleteExpense error
	failCreate        error
	failUpdate        error
	failDeleteCat     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeStore) GetCategories(_ context.Context) ([]model.Category, error) {
	f.record("GetCategories")
	if f.failGetCategories != nil {
		return nil, f.failGetCategories
	}
	return append([]model.Category(nil), f.categories...), nil
}

func (f *fakeStore) GetCategory(_ context.Context, id int64) (*model.Category, error) {
	f.record("GetCategory")
	for _, cat := range f.categories {
		if cat.ID == id {
			c := cat
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, name, icon, color string) (*model.Category, error) {
	f.record("CreateCategory")
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	cat := model.Category{ID: f.nextID, Name: name, Icon: icon, Color: color}
	cat.ApplyDefaults()
	f.nextID++
	f.categories = append(f.categories, cat)
	return &cat, nil
}

func (f *fakeStore) UpdateCategory(_ context.Context, id int64, name, icon, color string) error {
	f.record("UpdateCategory")
	if f.failUpdate != nil {
		return f.failUpdate
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = name
			f.categories[i].Icon = icon
			f.categories[i].Color = color
			return nil
		}
	}
	return fmt.Errorf("category %d not found", id)
}

func (f *fakeStore) DeleteCategory(_ context.Context, id int64) error {
	f.record("DeleteCategory")
	if f.failDeleteCat != nil {
		return f.failDeleteCat
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) SaveExpense(_ context.Context, expense *model.Expense) error {
	f.record("SaveExpense")
	if f.failSave != nil {
		return f.failSave
	}
	expense.ID = f.nextID
	f.nextID++
	f.expenses = append(f.expenses, *expense)
	return nil
}

func (f *fakeStore) GetExpenses(_ context.Context, _ int) ([]model.Expense, error) {
	f.record("GetExpenses")
	if f.failGetExpenses != nil {
		return nil, f.failGetExpenses
	}
	return append([]model.Expense(nil), f.expenses...), nil
}

func (f *fakeStore) GetExpense(_ context.Context, id int64) (*model.Expense, error) {
	f.record("GetExpense")
	for _, e := range f.expenses {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeleteExpense(_ context.Context, id int64) error {
	f.record("DeleteExpense")
	if f.failDeleteExpense != nil {
		return f.failDeleteExpense
	}
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) Migrate(_ context.Context) error { return nil }
func (f *fakeStore) Close() error                    { return nil }

// fakeNotifier collects every alert shown to the user.
type fakeNotifier struct {
	alerts []string
}

func (f *fakeNotifier) Alert(message string) {
	f.alerts = append(f.alerts, message)
}

func (f *fakeNotifier) last() string {
	if len(f.alerts) == 0 {
		return ""
	}
	return f.alerts[len(f.alerts)-1]
}

// fakeConfirmer answers every confirmation with a scripted response.
type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(prompt string) bool {
	f.prompts = append(f.prompts, prompt)
	return f.answer
}
