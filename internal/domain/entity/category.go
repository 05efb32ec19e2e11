// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether the category type is one of the known values.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// OtherCategoryName is the catch-all category present for every type.
const OtherCategoryName = "Other"

// Category is seeded reference data shared by every user. A category is
// append-only once a transaction references it.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      CategoryType
	Icon      string
	Color     string
	CreatedAt time.Time
}

// NewCategory creates a new Category entity, applying the default icon and color when empty.
func NewCategory(name string, categoryType CategoryType, icon, color string) *Category {
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	if color == "" {
		color = DefaultCategoryColor
	}

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      categoryType,
		Icon:      icon,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
}

// HasName reports whether the category name matches ignoring case and surrounding spaces.
func (c *Category) HasName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}

// DefaultCategories returns the seed catalog.
func DefaultCategories() []*Category {
	return []*Category{
		NewCategory("Food & Dining", CategoryTypeExpense, "utensils", "#F97316"),
		NewCategory("Shopping", CategoryTypeExpense, "shopping-bag", "#EC4899"),
		NewCategory("Transportation", CategoryTypeExpense, "car", "#3B82F6"),
		NewCategory("Entertainment", CategoryTypeExpense, "film", "#8B5CF6"),
		NewCategory("Bills & Utilities", CategoryTypeExpense, "bolt", "#EAB308"),
		NewCategory("Healthcare", CategoryTypeExpense, "medical", "#EF4444"),
		NewCategory("Education", CategoryTypeExpense, "book", "#14B8A6"),
		NewCategory(OtherCategoryName, CategoryTypeExpense, DefaultCategoryIcon, DefaultCategoryColor),
		NewCategory("Salary", CategoryTypeIncome, "briefcase", "#22C55E"),
		NewCategory("Freelance", CategoryTypeIncome, "wallet", "#10B981"),
		NewCategory("Investments", CategoryTypeIncome, "chart-line", "#06B6D4"),
		NewCategory("Gifts", CategoryTypeIncome, "gift", "#F43F5E"),
		NewCategory(OtherCategoryName, CategoryTypeIncome, DefaultCategoryIcon, DefaultCategoryColor),
	}
}
