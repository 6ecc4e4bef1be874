package model

import (
	"strconv"
	"time"
)

// UncategorizedName is the category name shown for expenses with no category.
const UncategorizedName = "Uncategorized"

// Expense represents a single dated ledger entry. IsExpense distinguishes
// outflow (true) from inflow (false). CategoryID is nil for uncategorized
// entries; CategoryName and CategoryIcon are denormalized from the joined
// category at read time.
type Expense struct {
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Title        string
	Description  string
	CategoryName string
	CategoryIcon string
	CategoryID   *int64
	Amount       float64
	ID           int64
	IsExpense    bool
}

// FormattedAmount renders the amount as a signed yen string, e.g. "-¥3000"
// for an expense and "+¥1200" for income. Trailing zeros are dropped.
func (e *Expense) FormattedAmount() string {
	sign := "+"
	if e.IsExpense {
		sign = "-"
	}
	return sign + "¥" + strconv.FormatFloat(e.Amount, 'f', -1, 64)
}

// FormattedDate renders the entry date as YYYY-MM-DD.
func (e *Expense) FormattedDate() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format("2006-01-02")
}
