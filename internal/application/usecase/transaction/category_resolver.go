package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// CategoryResolver picks the category of a ledger entry: explicit id first,
// then the suggestion, then the catch-all category of the entry's type.
type CategoryResolver struct {
	categoryRepo adapter.CategoryRepository
	suggester    CategorySuggester
}

// NewCategoryResolver creates a new CategoryResolver instance.
func NewCategoryResolver(categoryRepo adapter.CategoryRepository, suggester CategorySuggester) *CategoryResolver {
	return &CategoryResolver{
		categoryRepo: categoryRepo,
		suggester:    suggester,
	}
}

// ByID loads a category and checks it matches the transaction type.
func (r *CategoryResolver) ByID(ctx context.Context, id uuid.UUID, transactionType entity.TransactionType) (*entity.Category, error) {
	cat, err := r.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				fmt.Sprintf("category %s not found", id),
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if cat.Type != transactionType.CategoryType() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("category %q is for %s, not %s", cat.Name, cat.Type, transactionType),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return cat, nil
}

// Infer suggests a category from the description or falls back to "Other".
func (r *CategoryResolver) Infer(ctx context.Context, description string, transactionType entity.TransactionType) (*entity.Category, error) {
	categories, err := r.categoryRepo.FindByType(ctx, transactionType.CategoryType())
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if r.suggester != nil {
		if suggested := r.suggester.Suggest(description, categories); suggested != nil {
			return suggested, nil
		}
	}

	for _, cat := range categories {
		if cat.HasName(entity.OtherCategoryName) {
			return cat, nil
		}
	}

	return nil, domainerror.NewTransactionError(
		domainerror.ErrCodeNoCategoryAvailable,
		fmt.Sprintf("no category given and no %q %s category exists", entity.OtherCategoryName, transactionType),
		domainerror.ErrNoCategoryAvailable,
	)
}

// Resolve dispatches to ByID when an id is set, Infer otherwise.
func (r *CategoryResolver) Resolve(ctx context.Context, id *uuid.UUID, description string, transactionType entity.TransactionType) (*entity.Category, error) {
	if id != nil {
		return r.ByID(ctx, *id, transactionType)
	}
	return r.Infer(ctx, description, transactionType)
}
