package category

import (
	"context"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	CategoryType *entity.CategoryType // Optional filter by category type
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase handles listing the shared category catalog.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var categories []*entity.Category
	var err error

	// Fetch categories based on filters
	if input.CategoryType != nil {
		if !input.CategoryType.IsValid() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryType,
				"category type must be 'expense' or 'income'",
				domainerror.ErrInvalidCategoryType,
			)
		}
		categories, err = uc.categoryRepo.FindByType(ctx, *input.CategoryType)
	} else {
		categories, err = uc.categoryRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(categories)),
	}
	for i, cat := range categories {
		output.Categories[i] = NewCategoryOutput(cat)
	}
	return output, nil
}
