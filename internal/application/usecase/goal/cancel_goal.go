package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// CancelGoalInput represents the input for cancelling a goal.
type CancelGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// CancelGoalUseCase soft-deletes a goal by moving it to cancelled.
// Goals are never hard-deleted.
type CancelGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCancelGoalUseCase creates a new CancelGoalUseCase instance.
func NewCancelGoalUseCase(goalRepo adapter.GoalRepository) *CancelGoalUseCase {
	return &CancelGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the cancellation. Only active goals can be cancelled.
func (uc *CancelGoalUseCase) Execute(ctx context.Context, input CancelGoalInput) error {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return err
	}
	if !goal.IsActive() {
		return goalNotActive(goal)
	}

	if err := uc.goalRepo.UpdateStatus(ctx, goal.ID, entity.GoalStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel goal: %w", err)
	}

	slog.Info("Goal cancelled", "goalID", goal.ID, "userID", goal.UserID)
	return nil
}
