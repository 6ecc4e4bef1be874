// Package model defines the core domain types shared across the application.
package model

// Default appearance for categories created without an explicit icon or color.
const (
	DefaultCategoryIcon  = "📝"
	DefaultCategoryColor = "#65BBE9"
)

// Category represents a named classification that expense records can reference.
type Category struct {
	Name  string
	Icon  string
	Color string
	ID    int64
}

// ApplyDefaults fills in the standard icon and color for empty fields.
func (c *Category) ApplyDefaults() {
	if c.Icon == "" {
		c.Icon = DefaultCategoryIcon
	}
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
}
