package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// UpdateTransactionInput represents a patch. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	Date          *time.Time
	Description   *string
}

// UpdateTransactionOutput represents the output of an update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles ledger entry edits.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categories      *CategoryResolver
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository, categories *CategoryResolver) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categories:      categories,
	}
}

// Execute performs the update. The patch is validated in full before writing.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	// Validate patch fields
	if input.Amount == nil && input.CategoryID == nil && input.Date == nil && input.Description == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionData,
			"at least one field must be provided",
			domainerror.ErrMissingTransactionData,
		)
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}

	// Contributions are append-only, so a linked amount is frozen.
	if input.Amount != nil && transaction.IsGoalLinked() && !input.Amount.Equal(transaction.Amount) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeGoalLinkedTransaction,
			"the amount of a goal-linked income cannot be changed",
			domainerror.ErrGoalLinkedTransaction,
		)
	}

	var cat *entity.Category
	if input.CategoryID != nil {
		cat, err = uc.categories.ByID(ctx, *input.CategoryID, transaction.Type)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = cat.ID
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Date != nil {
		transaction.Date = entity.CalendarDate(*input.Date)
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}
	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound(input.TransactionID)
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{
		Transaction: NewTransactionOutput(transaction, cat),
	}, nil
}

// findOwnedTransaction loads a transaction, reporting other users' rows as not found.
func findOwnedTransaction(ctx context.Context, repo adapter.TransactionRepository, userID, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if transaction.UserID != userID {
		return nil, notFound(id)
	}
	return transaction, nil
}

func notFound(id uuid.UUID) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		fmt.Sprintf("transaction %s not found", id),
		domainerror.ErrTransactionNotFound,
	)
}
