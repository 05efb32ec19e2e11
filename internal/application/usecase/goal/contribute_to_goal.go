package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// ContributeToGoalInput represents the input for a goal contribution.
type ContributeToGoalInput struct {
	UserID        uuid.UUID
	GoalID        uuid.UUID
	Amount        decimal.Decimal
	TransactionID *uuid.UUID // Optional; makes the contribution retry-safe
}

// ContributeToGoalOutput represents the output of a goal contribution.
type ContributeToGoalOutput struct {
	Goal *GoalOutput
	// Applied is false when the transaction's contribution was already recorded.
	Applied bool
	// GoalAchieved is true when this contribution completed the goal.
	GoalAchieved bool
}

// ContributeToGoalUseCase adds to a goal's accumulated amount.
type ContributeToGoalUseCase struct {
	goalRepo  adapter.GoalRepository
	publisher adapter.EventPublisher
}

// NewContributeToGoalUseCase creates a new ContributeToGoalUseCase instance.
func NewContributeToGoalUseCase(goalRepo adapter.GoalRepository, publisher adapter.EventPublisher) *ContributeToGoalUseCase {
	return &ContributeToGoalUseCase{
		goalRepo:  goalRepo,
		publisher: publisher,
	}
}

// Execute performs the contribution.
func (uc *ContributeToGoalUseCase) Execute(ctx context.Context, input ContributeToGoalInput) (*ContributeToGoalOutput, error) {
	result, err := uc.apply(ctx, input.UserID, input.GoalID, input.Amount, input.TransactionID)
	if err != nil {
		return nil, err
	}
	return &ContributeToGoalOutput{
		Goal:         NewGoalOutput(result.Goal),
		Applied:      result.Applied,
		GoalAchieved: result.JustAchieved,
	}, nil
}

// ContributeTransaction applies a committed income transaction to its linked goal.
func (uc *ContributeToGoalUseCase) ContributeTransaction(ctx context.Context, transaction *entity.Transaction) (*adapter.ContributionResult, error) {
	if transaction.GoalID == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotGoalLinked,
			fmt.Sprintf("transaction %s is not linked to a goal", transaction.ID),
			domainerror.ErrTransactionNotGoalLinked,
		)
	}
	id := transaction.ID
	return uc.apply(ctx, transaction.UserID, *transaction.GoalID, transaction.Amount, &id)
}

func (uc *ContributeToGoalUseCase) apply(
	ctx context.Context,
	userID, goalID uuid.UUID,
	amount decimal.Decimal,
	transactionID *uuid.UUID,
) (*adapter.ContributionResult, error) {
	// Validate amount
	if violation := entity.AmountViolation(amount); violation != "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionAmount,
			"contribution amount "+violation,
			domainerror.ErrInvalidContributionAmount,
		)
	}

	// Check ownership and status
	goal, err := findOwnedGoal(ctx, uc.goalRepo, userID, goalID)
	if err != nil {
		return nil, err
	}
	// A keyed contribution may already be recorded on a goal that has since
	// been achieved; the repository reports that as a no-op.
	if !goal.IsActive() && transactionID == nil {
		return nil, goalNotActive(goal)
	}

	result, err := uc.goalRepo.Contribute(ctx, entity.NewGoalContribution(goal.ID, userID, amount, transactionID))
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrGoalNotActive):
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotActive,
				fmt.Sprintf("goal %s no longer accepts contributions", goal.ID),
				domainerror.ErrGoalNotActive,
			)
		case errors.Is(err, domainerror.ErrGoalNotFound):
			return nil, goalNotFound(goal.ID)
		}
		return nil, fmt.Errorf("failed to apply contribution: %w", err)
	}

	if result.JustAchieved {
		slog.Info("Goal achieved",
			"goalID", result.Goal.ID,
			"userID", result.Goal.UserID,
			"targetAmount", result.Goal.TargetAmount.String(),
		)
		if err := publish(ctx, uc.publisher, entity.NewGoalAchievedEvent(result.Goal)); err != nil {
			slog.Warn("Failed to publish goal achieved event",
				"goalID", result.Goal.ID,
				"error", err,
			)
		}
	}

	return result, nil
}
