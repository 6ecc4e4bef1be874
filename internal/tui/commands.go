package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kakeibo/internal/model"
)

const statusLifetime = 3 * time.Second

// loadAll reloads both lists. The view-models degrade to empty lists on
// read failure and raise an alert, so the command always succeeds.
func (m Model) loadAll() tea.Cmd {
	records := m.records
	catVM := m.catVM
	notifier := m.notifier
	return func() tea.Msg {
		ctx := context.Background()
		records.LoadCategories(ctx)
		records.LoadRecords(ctx)
		catVM.Load(ctx)
		return refreshMsg{alerts: notifier.take()}
	}
}

func (m Model) addRecord() tea.Cmd {
	records := m.records
	notifier := m.notifier
	submitted := strings.TrimSpace(m.records.Title)
	return func() tea.Msg {
		records.AddRecord(context.Background())
		// A successful add resets the form fields.
		accepted := submitted != "" && records.Title == ""
		return refreshMsg{alerts: notifier.take(), accepted: accepted}
	}
}

func (m Model) deleteRecord(id int64) tea.Cmd {
	records := m.records
	notifier := m.notifier
	return func() tea.Msg {
		records.DeleteRecord(context.Background(), id)
		return refreshMsg{alerts: notifier.take()}
	}
}

func (m Model) addCategory() tea.Cmd {
	records := m.records
	catVM := m.catVM
	notifier := m.notifier
	submitted := strings.TrimSpace(m.catVM.NewName)
	return func() tea.Msg {
		ctx := context.Background()
		catVM.Add(ctx)
		// The record form's category selector shares the same store.
		records.LoadCategories(ctx)
		accepted := submitted != "" && catVM.NewName == ""
		return refreshMsg{alerts: notifier.take(), accepted: accepted}
	}
}

func (m Model) deleteCategory(cat model.Category) tea.Cmd {
	records := m.records
	catVM := m.catVM
	notifier := m.notifier
	return func() tea.Msg {
		ctx := context.Background()
		catVM.Delete(ctx, cat)
		records.LoadCategories(ctx)
		records.LoadRecords(ctx)
		return refreshMsg{alerts: notifier.take()}
	}
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}
