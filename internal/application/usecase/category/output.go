// Package category contains category catalog and suggestion use cases.
package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// CategoryOutput represents a single category in use case outputs.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	Type      entity.CategoryType
	Icon      string
	Color     string
	CreatedAt time.Time
}

// NewCategoryOutput maps a category entity to its output form.
func NewCategoryOutput(category *entity.Category) *CategoryOutput {
	if category == nil {
		return nil
	}
	return &CategoryOutput{
		ID:        category.ID,
		Name:      category.Name,
		Type:      category.Type,
		Icon:      category.Icon,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
	}
}
