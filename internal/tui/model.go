// Package tui implements the interactive terminal interface. It is
// presentation glue only: every read and mutation goes through the
// view-models, and the lists shown on screen are whatever the store
// reported after the last reload.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kakeibo/internal/model"
	"kakeibo/internal/service"
	"kakeibo/internal/viewmodel"
)

// State represents the current screen of the TUI.
type State int

const (
	// StateRecords shows the record list.
	StateRecords State = iota
	// StateAddRecord shows the add-record form.
	StateAddRecord
	// StateCategories shows the category manager.
	StateCategories
	// StateAddCategory shows the add-category form.
	StateAddCategory
	// StateConfirmDelete overlays a delete confirmation.
	StateConfirmDelete
)

// deleteTarget identifies what the confirmation overlay would delete.
type deleteTarget struct {
	name       string
	id         int64
	isCategory bool
}

// Model holds the TUI state.
type Model struct {
	records   *viewmodel.RecordsViewModel
	catVM     *viewmodel.CategoriesViewModel
	notifier  *captureNotifier
	pending   *deleteTarget
	status    string
	inputs    []textinput.Model
	state     State
	cursor    int
	catCursor int
	focus     int
	width     int
	height    int
	busy      bool
	isExpense bool
	quitting  bool
}

// Form input indexes.
const (
	inputTitle = iota
	inputAmount
	inputDescription
	inputCount
)

// captureNotifier buffers view-model alerts so commands can hand them back
// to the update loop as messages.
type captureNotifier struct {
	alerts []string
}

func (n *captureNotifier) Alert(message string) {
	n.alerts = append(n.alerts, message)
}

func (n *captureNotifier) take() []string {
	alerts := n.alerts
	n.alerts = nil
	return alerts
}

// alwaysConfirm satisfies the view-model's confirmation contract; the TUI
// renders its own confirmation overlay before calling delete.
type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(string) bool { return true }

// NewModel creates the TUI model bound to a store.
func NewModel(store service.Storage) Model {
	notifier := &captureNotifier{}

	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		inputs[i] = textinput.New()
	}
	inputs[inputTitle].Placeholder = "Title (max 20 chars)"
	inputs[inputTitle].CharLimit = viewmodel.MaxTitleLength
	inputs[inputAmount].Placeholder = "Amount (yen)"
	inputs[inputDescription].Placeholder = "Description (optional)"

	return Model{
		records:   viewmodel.NewRecordsViewModel(store, notifier, alwaysConfirm{}),
		catVM:     viewmodel.NewCategoriesViewModel(store, notifier, alwaysConfirm{}),
		notifier:  notifier,
		inputs:    inputs,
		state:     StateRecords,
		isExpense: true,
	}
}

// Init loads the initial data.
func (m Model) Init() tea.Cmd {
	return m.loadAll()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.busy = false
		m.clampCursor(len(m.records.Records))
		if len(msg.alerts) > 0 {
			m.status = strings.Join(msg.alerts, " · ")
		}
		if msg.accepted {
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			m.blurInputs()
			if m.state == StateAddRecord {
				m.catCursor = 0
				m.state = StateRecords
			} else if m.state == StateAddCategory {
				m.state = StateCategories
			}
		}
		return m, clearStatusLater()

	case statusClearMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) clampCursor(listLen int) {
	if m.cursor >= listLen {
		m.cursor = listLen - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.busy {
		return m, nil // inputs disabled while a store operation is outstanding
	}

	switch m.state {
	case StateRecords:
		return m.handleRecordsKey(msg)
	case StateAddRecord:
		return m.handleAddRecordKey(msg)
	case StateCategories:
		return m.handleCategoriesKey(msg)
	case StateAddCategory:
		return m.handleAddCategoryKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m Model) handleRecordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records.Records)-1 {
			m.cursor++
		}
	case "a":
		m.state = StateAddRecord
		m.focus = inputTitle
		m.inputs[inputTitle].Placeholder = "Title (max 20 chars)"
		m.inputs[inputTitle].Focus()
		return m, textinput.Blink
	case "c":
		m.state = StateCategories
		m.catCursor = 0
	case "d", "delete":
		if len(m.records.Records) > 0 {
			rec := m.records.Records[m.cursor]
			m.pending = &deleteTarget{id: rec.ID, name: rec.Title}
			m.state = StateConfirmDelete
		}
	case "r":
		m.busy = true
		return m, m.loadAll()
	}
	return m, nil
}

func (m Model) handleAddRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateRecords
		m.blurInputs()
		return m, nil
	case "tab", "shift+tab":
		m.blurInputs()
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % inputCount
		} else {
			m.focus = (m.focus + inputCount - 1) % inputCount
		}
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	case "left", "right":
		// Cycle category selection; position 0 is "uncategorized".
		if len(m.records.Categories) > 0 {
			delta := 1
			if msg.String() == "left" {
				delta = len(m.records.Categories)
			}
			m.catCursor = (m.catCursor + delta) % (len(m.records.Categories) + 1)
		}
		return m, nil
	case "ctrl+t":
		m.isExpense = !m.isExpense
		return m, nil
	case "enter":
		m.records.Title = m.inputs[inputTitle].Value()
		m.records.Amount = m.inputs[inputAmount].Value()
		m.records.Description = m.inputs[inputDescription].Value()
		m.records.IsExpense = m.isExpense
		m.records.CategoryID = 0
		if m.catCursor > 0 && m.catCursor <= len(m.records.Categories) {
			m.records.CategoryID = m.records.Categories[m.catCursor-1].ID
		}
		m.busy = true
		return m, m.addRecord()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.state = StateRecords
	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}
	case "down", "j":
		if m.catCursor < len(m.catVM.Categories)-1 {
			m.catCursor++
		}
	case "a":
		m.state = StateAddCategory
		m.focus = inputTitle
		m.inputs[inputTitle].SetValue("")
		m.inputs[inputTitle].Placeholder = "Category name"
		m.inputs[inputTitle].Focus()
		return m, textinput.Blink
	case "d", "delete":
		if len(m.catVM.Categories) > 0 {
			cat := m.catVM.Categories[m.catCursor]
			m.pending = &deleteTarget{id: cat.ID, name: cat.Name, isCategory: true}
			m.state = StateConfirmDelete
		}
	}
	return m, nil
}

func (m Model) handleAddCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateCategories
		m.blurInputs()
		return m, nil
	case "enter":
		m.catVM.NewName = m.inputs[inputTitle].Value()
		m.busy = true
		return m, m.addCategory()
	}

	var cmd tea.Cmd
	m.inputs[inputTitle], cmd = m.inputs[inputTitle].Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.pending
	switch msg.String() {
	case "y", "Y":
		m.pending = nil
		m.busy = true
		if target.isCategory {
			m.state = StateCategories
			return m, m.deleteCategory(model.Category{ID: target.id, Name: target.name})
		}
		m.state = StateRecords
		return m, m.deleteRecord(target.id)
	case "n", "N", "esc":
		m.pending = nil
		if target != nil && target.isCategory {
			m.state = StateCategories
		} else {
			m.state = StateRecords
		}
	}
	return m, nil
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// selectedCategory returns the category at the form's selector position,
// or nil when the selector sits on "uncategorized".
func (m Model) selectedCategory() *model.Category {
	if m.catCursor == 0 || m.catCursor > len(m.records.Categories) {
		return nil
	}
	return &m.records.Categories[m.catCursor-1]
}
