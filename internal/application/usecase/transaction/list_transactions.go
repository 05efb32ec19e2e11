package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

const (
	// DefaultPageSize is used when no limit is requested.
	DefaultPageSize = 50
	// MaxPageSize caps the requested limit.
	MaxPageSize = 200
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	GoalID      *uuid.UUID
	Search      string
	Page        int
	Limit       int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase lists a user's ledger, newest first.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, categoryRepo adapter.CategoryRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if err := validateUserID(input.UserID); err != nil {
		return nil, err
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
	}

	// Normalize pagination
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	transactions, total, err := uc.transactionRepo.List(ctx, adapter.TransactionFilter{
		UserID:      input.UserID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CategoryIDs: input.CategoryIDs,
		Type:        input.Type,
		GoalID:      input.GoalID,
		Search:      input.Search,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Attach categories from the shared catalog
	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(transactions)),
		Pagination: PaginationOutput{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}
	for i, transaction := range transactions {
		output.Transactions[i] = NewTransactionOutput(transaction, byID[transaction.CategoryID])
	}
	return output, nil
}
