package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
	Status *entity.GoalStatus // Optional
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*GoalOutput
}

// ListGoalsUseCase handles listing a user's goals.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"status must be 'active', 'achieved' or 'cancelled'",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	output := &ListGoalsOutput{Goals: make([]*GoalOutput, len(goals))}
	for i, goal := range goals {
		output.Goals[i] = NewGoalOutput(goal)
	}
	return output, nil
}
