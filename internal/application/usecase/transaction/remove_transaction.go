package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// RemoveTransactionInput identifies the entry to remove.
type RemoveTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// RemoveTransactionUseCase soft-deletes ledger entries.
type RemoveTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewRemoveTransactionUseCase creates a new RemoveTransactionUseCase instance.
func NewRemoveTransactionUseCase(transactionRepo adapter.TransactionRepository) *RemoveTransactionUseCase {
	return &RemoveTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the removal. Goal-linked income cannot be removed.
func (uc *RemoveTransactionUseCase) Execute(ctx context.Context, input RemoveTransactionInput) error {
	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return err
	}

	if transaction.IsGoalLinked() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeGoalLinkedTransaction,
			"goal-linked income cannot be removed",
			domainerror.ErrGoalLinkedTransaction,
		)
	}

	if err := uc.transactionRepo.Delete(ctx, transaction.ID); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return notFound(transaction.ID)
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
