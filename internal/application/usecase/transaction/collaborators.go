package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// GoalContributor applies a committed income transaction to its linked goal.
// Applying the same transaction twice must be a no-op.
type GoalContributor interface {
	ContributeTransaction(ctx context.Context, transaction *entity.Transaction) (*adapter.ContributionResult, error)
}

// XPAwarder grants xp for a catalogued action through the progression engine.
type XPAwarder interface {
	AwardAction(ctx context.Context, userID uuid.UUID, action, sourceKey string) error
}

// CategorySuggester proposes a category for a description.
type CategorySuggester interface {
	Suggest(description string, available []*entity.Category) *entity.Category
}

// TransactionSourceKey is the xp ledger key of the award for logging a transaction.
func TransactionSourceKey(id uuid.UUID) string {
	return "transaction:" + id.String()
}
