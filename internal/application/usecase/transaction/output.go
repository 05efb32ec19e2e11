// Package transaction contains the transaction ledger use cases.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/usecase/category"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// TransactionOutput represents a single transaction in use case outputs.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Category    *category.CategoryOutput
	Date        time.Time
	Description string
	GoalID      *uuid.UUID
	Source      entity.TransactionSource
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransactionOutput maps a transaction and its optional category to output form.
func NewTransactionOutput(transaction *entity.Transaction, cat *entity.Category) *TransactionOutput {
	return &TransactionOutput{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        transaction.Type,
		Amount:      transaction.Amount,
		CategoryID:  transaction.CategoryID,
		Category:    category.NewCategoryOutput(cat),
		Date:        transaction.Date,
		Description: transaction.Description,
		GoalID:      transaction.GoalID,
		Source:      transaction.Source,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}
