// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// CategoryRepository defines the interface for category catalog persistence.
type CategoryRepository interface {
	// Create inserts a category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by case-insensitive name within a type.
	FindByName(ctx context.Context, name string, categoryType entity.CategoryType) (*entity.Category, error)

	// FindByType retrieves all categories of a type ordered by name.
	FindByType(ctx context.Context, categoryType entity.CategoryType) ([]*entity.Category, error)

	// FindAll retrieves the whole catalog ordered by type and name.
	FindAll(ctx context.Context) ([]*entity.Category, error)
}
