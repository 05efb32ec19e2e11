package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// SeedCategoriesOutput reports how many catalog entries were inserted.
type SeedCategoriesOutput struct {
	Created  int
	Existing int
}

// SeedCategoriesUseCase makes sure the default catalog exists.
// Running it repeatedly leaves the catalog unchanged.
type SeedCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	defaults     func() []*entity.Category
}

// NewSeedCategoriesUseCase creates a new SeedCategoriesUseCase instance.
func NewSeedCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedCategoriesUseCase {
	return &SeedCategoriesUseCase{
		categoryRepo: categoryRepo,
		defaults:     entity.DefaultCategories,
	}
}

// Execute inserts every default category missing from the catalog.
func (uc *SeedCategoriesUseCase) Execute(ctx context.Context) (*SeedCategoriesOutput, error) {
	output := &SeedCategoriesOutput{}

	for _, category := range uc.defaults() {
		_, err := uc.categoryRepo.FindByName(ctx, category.Name, category.Type)
		if err == nil {
			output.Existing++
			continue
		}
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to look up category %q: %w", category.Name, err)
		}

		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
		output.Created++
	}

	slog.Info("Category catalog seeded",
		"created", output.Created,
		"existing", output.Existing,
	)
	return output, nil
}
