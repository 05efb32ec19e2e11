// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// ContributionResult is the outcome of an atomic goal contribution.
type ContributionResult struct {
	Goal *entity.Goal
	// Applied is false when the contribution was already recorded for its transaction.
	Applied bool
	// JustAchieved is true when this contribution moved the goal to achieved.
	JustAchieved bool
}

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves the goals of a user, optionally filtered by status.
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error)

	// UpdateStatus moves a goal to a new status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.GoalStatus) error

	// Contribute records the contribution and increments current_amount in one
	// database transaction. Only active goals accept contributions.
	Contribute(ctx context.Context, contribution *entity.GoalContribution) (*ContributionResult, error)

	// FindContributions lists the contributions of a goal, newest first.
	FindContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error)
}
