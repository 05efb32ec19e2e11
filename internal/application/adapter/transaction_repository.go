// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	GoalID      *uuid.UUID
	Search      string // Case-insensitive description match
	Limit       int    // <= 0 means no limit
	Offset      int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a non-deleted transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// Update persists the mutable fields of a transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves transactions ordered by date DESC, created_at DESC.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, int64, error)

	// SumByType sums amounts per type for a user. Nil bounds are open.
	SumByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (income, expense decimal.Decimal, err error)
}
