package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// CommitTransactionInput represents a new ledger entry.
type CommitTransactionInput struct {
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID // Optional; inferred from the description when nil
	Date        time.Time
	Description string
	GoalID      *uuid.UUID // Optional; income only
	Source      entity.TransactionSource
}

// CommitTransactionOutput represents the output of a commit.
type CommitTransactionOutput struct {
	Transaction *TransactionOutput
	// GoalApplied is true when the linked goal received the contribution.
	GoalApplied bool
	// GoalAchieved is true when the contribution completed the linked goal.
	GoalAchieved bool
	// XPAwarded is false when the transaction_logged award could not be applied.
	XPAwarded  bool
	AwardError error
}

// CommitTransactionUseCase validates and records a ledger entry.
type CommitTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	categories      *CategoryResolver
	contributor     GoalContributor
	awarder         XPAwarder
}

// NewCommitTransactionUseCase creates a new CommitTransactionUseCase instance.
func NewCommitTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	categories *CategoryResolver,
	contributor GoalContributor,
	awarder XPAwarder,
) *CommitTransactionUseCase {
	return &CommitTransactionUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		categories:      categories,
		contributor:     contributor,
		awarder:         awarder,
	}
}

// Execute performs the commit. When the row is written but the goal
// contribution fails, the output is returned together with a
// *domainerror.PartialFailureError.
func (uc *CommitTransactionUseCase) Execute(ctx context.Context, input CommitTransactionInput) (*CommitTransactionOutput, error) {
	// Validate the entry before any read or write
	if err := validateUserID(input.UserID); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.GoalID != nil && input.Type != entity.TransactionTypeIncome {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeGoalOnExpense,
			"only income transactions can be linked to a goal",
			domainerror.ErrGoalOnExpense,
		)
	}

	// Resolve category
	cat, err := uc.categories.Resolve(ctx, input.CategoryID, input.Description, input.Type)
	if err != nil {
		return nil, err
	}

	// Check the linked goal accepts contributions
	if input.GoalID != nil {
		if err := uc.checkGoal(ctx, input.UserID, *input.GoalID); err != nil {
			return nil, err
		}
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Type,
		input.Amount,
		cat.ID,
		input.Date,
		input.Description,
		input.GoalID,
		input.Source,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	output := &CommitTransactionOutput{
		Transaction: NewTransactionOutput(transaction, cat),
	}

	var contributionErr error
	if transaction.IsGoalLinked() {
		result, err := uc.contributor.ContributeTransaction(ctx, transaction)
		if err != nil {
			slog.Warn("Goal contribution failed after commit",
				"transactionID", transaction.ID,
				"goalID", *transaction.GoalID,
				"error", err,
			)
			contributionErr = domainerror.NewPartialFailureError(transaction, *transaction.GoalID, err)
		} else {
			output.GoalApplied = result.Applied
			output.GoalAchieved = result.JustAchieved
		}
	}

	uc.award(ctx, transaction, output)

	if contributionErr != nil {
		return output, contributionErr
	}
	return output, nil
}

func (uc *CommitTransactionUseCase) checkGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	goal, err := uc.goalRepo.FindByID(ctx, goalID)
	if err != nil && !errors.Is(err, domainerror.ErrGoalNotFound) {
		return fmt.Errorf("failed to load goal: %w", err)
	}
	if err != nil || goal.UserID != userID {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			fmt.Sprintf("goal %s not found", goalID),
			domainerror.ErrGoalNotFound,
		)
	}
	if !goal.IsActive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotActive,
			fmt.Sprintf("goal %s is %s and no longer accepts contributions", goalID, goal.Status),
			domainerror.ErrGoalNotActive,
		)
	}
	return nil
}

// award grants transaction_logged xp. Failures never undo the commit.
func (uc *CommitTransactionUseCase) award(ctx context.Context, transaction *entity.Transaction, output *CommitTransactionOutput) {
	if uc.awarder == nil {
		return
	}
	err := uc.awarder.AwardAction(ctx, transaction.UserID, valueobject.ActionTransactionLogged, TransactionSourceKey(transaction.ID))
	if err != nil {
		slog.Warn("XP award failed after commit",
			"transactionID", transaction.ID,
			"userID", transaction.UserID,
			"error", err,
		)
		output.AwardError = err
		return
	}
	output.XPAwarded = true
}
