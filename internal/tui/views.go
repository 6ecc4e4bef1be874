package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kakeibo/internal/cli"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(cli.PrimaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(cli.WarningColor).
			Padding(0, 1)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			Width(12)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.ErrorColor).
			Padding(1, 2)
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateRecords:
		body = m.viewRecords()
	case StateAddRecord:
		body = m.viewAddRecord()
	case StateCategories:
		body = m.viewCategories()
	case StateAddCategory:
		body = m.viewAddCategory()
	case StateConfirmDelete:
		body = m.viewConfirm()
	}

	status := ""
	if m.busy {
		status = statusStyle.Render("Working...")
	} else if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m Model) viewRecords() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Kakeibo · Records"))
	b.WriteString("\n\n")

	if len(m.records.Records) == 0 {
		b.WriteString(cli.SubtleStyle.Render("  No records yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, rec := range m.records.Records {
		amount := rec.FormattedAmount()
		if rec.IsExpense {
			amount = cli.ExpenseStyle.Render(amount)
		} else {
			amount = cli.IncomeStyle.Render(amount)
		}
		line := fmt.Sprintf("%s  %s %-20s %s  %s",
			rec.FormattedDate(), rec.CategoryIcon, rec.Title, amount,
			cli.SubtleStyle.Render(rec.CategoryName))
		if i == m.cursor {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add · d delete · c categories · r reload · j/k move · q quit"))
	return b.String()
}

func (m Model) viewAddRecord() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("New record"))
	b.WriteString("\n\n")

	labels := []string{"Title", "Amount", "Description"}
	for i, input := range m.inputs {
		b.WriteString(formLabelStyle.Render(labels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	kind := cli.ExpenseStyle.Render("expense")
	if !m.isExpense {
		kind = cli.IncomeStyle.Render("income")
	}
	b.WriteString(formLabelStyle.Render("Type"))
	b.WriteString(kind)
	b.WriteString("\n")

	b.WriteString(formLabelStyle.Render("Category"))
	if cat := m.selectedCategory(); cat != nil {
		b.WriteString(fmt.Sprintf("◂ %s %s ▸", cat.Icon, cat.Name))
	} else {
		b.WriteString(cli.SubtleStyle.Render("◂ none ▸"))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("tab next field · ←/→ category · ctrl+t expense/income · enter save · esc cancel"))
	return b.String()
}

func (m Model) viewCategories() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Categories"))
	b.WriteString("\n\n")

	if len(m.catVM.Categories) == 0 {
		b.WriteString(cli.SubtleStyle.Render("  No categories yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, cat := range m.catVM.Categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●")
		line := fmt.Sprintf("%s %s  %s", swatch, cat.Icon, cat.Name)
		if i == m.catCursor {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add · d delete · j/k move · esc back"))
	return b.String()
}

func (m Model) viewAddCategory() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("New category"))
	b.WriteString("\n\n")
	b.WriteString(formLabelStyle.Render("Name"))
	b.WriteString(m.inputs[inputTitle].View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter save · esc cancel"))
	return b.String()
}

func (m Model) viewConfirm() string {
	if m.pending == nil {
		return ""
	}
	what := "record"
	if m.pending.isCategory {
		what = "category"
	}
	prompt := fmt.Sprintf("Delete %s %q?\n\n", what, m.pending.name) +
		helpStyle.Render("y confirm · n cancel")
	box := overlayStyle.Render(prompt)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
