// Package goal contains savings goal use cases.
package goal

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

// GoalOutput represents a goal in use case outputs.
type GoalOutput struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Remaining     decimal.Decimal
	Progress      float64
	Deadline      *time.Time
	Status        entity.GoalStatus
	AchievedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoalOutput maps a goal entity to its output form.
func NewGoalOutput(goal *entity.Goal) *GoalOutput {
	return &GoalOutput{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Title:         goal.Title,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Remaining:     goal.Remaining(),
		Progress:      goal.Progress(),
		Deadline:      goal.Deadline,
		Status:        goal.Status,
		AchievedAt:    goal.AchievedAt,
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
	}
}

// findOwnedGoal loads a goal, reporting other users' goals as not found.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, userID, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound(goalID)
		}
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, goalNotFound(goalID)
	}
	return goal, nil
}

func goalNotFound(id uuid.UUID) error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		fmt.Sprintf("goal %s not found", id),
		domainerror.ErrGoalNotFound,
	)
}

func goalNotActive(goal *entity.Goal) error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotActive,
		fmt.Sprintf("goal %s is %s", goal.ID, goal.Status),
		domainerror.ErrGoalNotActive,
	)
}

// publish sends an advisory event when a publisher is configured.
func publish(ctx context.Context, publisher adapter.EventPublisher, event entity.Event) error {
	if publisher == nil {
		return nil
	}
	return publisher.Publish(ctx, event)
}
