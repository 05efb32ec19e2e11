package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
)

// GetGoalInput represents the input for retrieving a goal.
type GetGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// GetGoalOutput represents the output of retrieving a goal.
type GetGoalOutput struct {
	Goal *GoalOutput
}

// GetGoalUseCase handles retrieving a single goal.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute retrieves the goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}
	return &GetGoalOutput{Goal: NewGoalOutput(goal)}, nil
}
