package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// GetTotalsInput represents the input for ledger totals. Nil bounds are open.
type GetTotalsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetTotalsOutput represents the output of ledger totals.
type GetTotalsOutput struct {
	Totals entity.TransactionTotals
}

// GetTotalsUseCase computes income, expense and balance for a user.
type GetTotalsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTotalsUseCase creates a new GetTotalsUseCase instance.
func NewGetTotalsUseCase(transactionRepo adapter.TransactionRepository) *GetTotalsUseCase {
	return &GetTotalsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the aggregation.
func (uc *GetTotalsUseCase) Execute(ctx context.Context, input GetTotalsInput) (*GetTotalsOutput, error) {
	if err := validateUserID(input.UserID); err != nil {
		return nil, err
	}

	var start, end *time.Time
	if input.StartDate != nil {
		d := entity.CalendarDate(*input.StartDate)
		start = &d
	}
	if input.EndDate != nil {
		d := entity.CalendarDate(*input.EndDate)
		end = &d
	}

	income, expense, err := uc.transactionRepo.SumByType(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return &GetTotalsOutput{
		Totals: entity.NewTransactionTotals(income, expense),
	}, nil
}
