package category

import (
	"context"
	"fmt"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description  string
	CategoryType entity.CategoryType
}

// SuggestCategoryOutput carries the suggested category, nil when nothing matched.
type SuggestCategoryOutput struct {
	Category *CategoryOutput
}

// SuggestCategoryUseCase runs the suggestion engine over the catalog of one type.
type SuggestCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	engine       *SuggestionEngine
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(categoryRepo adapter.CategoryRepository, engine *SuggestionEngine) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		categoryRepo: categoryRepo,
		engine:       engine,
	}
}

// Execute performs the suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if !input.CategoryType.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	categories, err := uc.categoryRepo.FindByType(ctx, input.CategoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return &SuggestCategoryOutput{
		Category: NewCategoryOutput(uc.engine.Suggest(input.Description, categories)),
	}, nil
}
