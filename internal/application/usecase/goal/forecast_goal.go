package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// ForecastGoalInput represents the input for a goal forecast.
type ForecastGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// ForecastGoalOutput represents the output of a goal forecast.
type ForecastGoalOutput struct {
	Goal     *GoalOutput
	Forecast entity.GoalForecast
}

// ForecastGoalUseCase projects time-to-completion from trailing income.
type ForecastGoalUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewForecastGoalUseCase creates a new ForecastGoalUseCase instance.
func NewForecastGoalUseCase(goalRepo adapter.GoalRepository, transactionRepo adapter.TransactionRepository, clock adapter.Clock) *ForecastGoalUseCase {
	return &ForecastGoalUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the forecast.
func (uc *ForecastGoalUseCase) Execute(ctx context.Context, input ForecastGoalInput) (*ForecastGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	income, err := trailingIncome(ctx, uc.transactionRepo, uc.clock, input.UserID)
	if err != nil {
		return nil, err
	}

	return &ForecastGoalOutput{
		Goal:     NewGoalOutput(goal),
		Forecast: Forecast(goal, income),
	}, nil
}
