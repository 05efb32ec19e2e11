package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// MaxTitleLength is the maximum allowed length for goal titles.
const MaxTitleLength = 100

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	Deadline     *time.Time // Optional
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *GoalOutput
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"user id is required",
			domainerror.ErrMissingGoalFields,
		)
	}

	// Validate title
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTitle,
			"title is required",
			domainerror.ErrInvalidGoalTitle,
		)
	}
	if len([]rune(title)) > MaxTitleLength {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTitle,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			domainerror.ErrInvalidGoalTitle,
		)
	}

	// Validate target amount
	if violation := entity.AmountViolation(input.TargetAmount); violation != "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount "+violation,
			domainerror.ErrInvalidTargetAmount,
		)
	}

	goal := entity.NewGoal(input.UserID, title, input.TargetAmount, input.Deadline)
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: NewGoalOutput(goal),
	}, nil
}
