package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// RetryContributionInput identifies a committed income whose contribution is retried.
type RetryContributionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// RetryContributionUseCase re-applies the goal contribution of a committed
// goal-linked income. Already applied contributions are left untouched.
type RetryContributionUseCase struct {
	transactionRepo adapter.TransactionRepository
	contributor     *ContributeToGoalUseCase
}

// NewRetryContributionUseCase creates a new RetryContributionUseCase instance.
func NewRetryContributionUseCase(transactionRepo adapter.TransactionRepository, contributor *ContributeToGoalUseCase) *RetryContributionUseCase {
	return &RetryContributionUseCase{
		transactionRepo: transactionRepo,
		contributor:     contributor,
	}
}

// Execute performs the retry.
func (uc *RetryContributionUseCase) Execute(ctx context.Context, input RetryContributionInput) (*ContributeToGoalOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil && !errors.Is(err, domainerror.ErrTransactionNotFound) {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if err != nil || transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			fmt.Sprintf("transaction %s not found", input.TransactionID),
			domainerror.ErrTransactionNotFound,
		)
	}

	if !transaction.IsGoalLinked() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotGoalLinked,
			fmt.Sprintf("transaction %s is not a goal-linked income", transaction.ID),
			domainerror.ErrTransactionNotGoalLinked,
		)
	}

	result, err := uc.contributor.ContributeTransaction(ctx, transaction)
	if err != nil {
		return nil, err
	}
	return &ContributeToGoalOutput{
		Goal:         NewGoalOutput(result.Goal),
		Applied:      result.Applied,
		GoalAchieved: result.JustAchieved,
	}, nil
}
