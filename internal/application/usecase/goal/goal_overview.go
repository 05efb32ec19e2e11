package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// GoalOverviewInput represents the input for the goal overview.
type GoalOverviewInput struct {
	UserID uuid.UUID
}

// GoalWithForecast pairs an active goal with its projection.
type GoalWithForecast struct {
	Goal     *GoalOutput
	Forecast entity.GoalForecast
}

// GoalOverviewOutput summarizes the user's active goals.
type GoalOverviewOutput struct {
	Goals          []*GoalWithForecast
	TrailingIncome decimal.Decimal
	TotalTarget    decimal.Decimal
	TotalSaved     decimal.Decimal
}

// GoalOverviewUseCase lists active goals with forecasts.
type GoalOverviewUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGoalOverviewUseCase creates a new GoalOverviewUseCase instance.
func NewGoalOverviewUseCase(goalRepo adapter.GoalRepository, transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GoalOverviewUseCase {
	return &GoalOverviewUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute builds the overview. Goals and trailing income are loaded concurrently.
func (uc *GoalOverviewUseCase) Execute(ctx context.Context, input GoalOverviewInput) (*GoalOverviewOutput, error) {
	var (
		goals  []*entity.Goal
		income decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		active := entity.GoalStatusActive
		found, err := uc.goalRepo.FindByUserID(gctx, input.UserID, &active)
		if err != nil {
			return fmt.Errorf("failed to list active goals: %w", err)
		}
		goals = found
		return nil
	})
	g.Go(func() error {
		sum, err := trailingIncome(gctx, uc.transactionRepo, uc.clock, input.UserID)
		if err != nil {
			return err
		}
		income = sum
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &GoalOverviewOutput{
		Goals:          make([]*GoalWithForecast, len(goals)),
		TrailingIncome: income,
		TotalTarget:    decimal.Zero,
		TotalSaved:     decimal.Zero,
	}
	for i, goal := range goals {
		output.Goals[i] = &GoalWithForecast{
			Goal:     NewGoalOutput(goal),
			Forecast: Forecast(goal, income),
		}
		output.TotalTarget = output.TotalTarget.Add(goal.TargetAmount)
		output.TotalSaved = output.TotalSaved.Add(goal.CurrentAmount)
	}
	return output, nil
}
