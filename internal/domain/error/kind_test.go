package error

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

func TestKindOf(t *testing.T) {
	txn := entity.NewTransaction(uuid.New(), entity.TransactionTypeIncome, decimal.NewFromInt(50), uuid.New(), testDate, "", nil, "")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "transaction validation",
			err:  NewTransactionError(ErrCodeInvalidAmount, "amount must be positive", ErrInvalidTransactionAmount),
			want: KindValidation,
		},
		{
			name: "transaction not found",
			err:  NewTransactionError(ErrCodeTransactionNotFound, "transaction not found", ErrTransactionNotFound),
			want: KindNotFound,
		},
		{
			name: "goal linked transaction",
			err:  NewTransactionError(ErrCodeGoalLinkedTransaction, "linked", ErrGoalLinkedTransaction),
			want: KindInvalidState,
		},
		{
			name: "goal not active wrapped",
			err:  fmt.Errorf("contribute: %w", NewGoalError(ErrCodeGoalNotActive, "goal is cancelled", ErrGoalNotActive)),
			want: KindInvalidState,
		},
		{
			name: "bare sentinel from repository",
			err:  fmt.Errorf("lookup: %w", ErrGoalNotFound),
			want: KindNotFound,
		},
		{
			name: "partial failure",
			err:  NewPartialFailureError(txn, uuid.New(), errors.New("db down")),
			want: KindPartialFailure,
		},
		{
			name: "dependency error",
			err:  NewDependencyError("gemini", "AI_TIMEOUT", "timed out", true, context.DeadlineExceeded),
			want: KindDependencyFailure,
		},
		{
			name: "unclassified error",
			err:  errors.New("connection refused"),
			want: KindDependencyFailure,
		},
		{
			name: "receipt validation",
			err:  NewReceiptError(ErrCodeEmptyDocument, "document is empty", ErrEmptyDocument),
			want: KindValidation,
		},
		{
			name: "profile not found",
			err:  NewProgressionError(ErrCodeProfileNotFound, "profile not found", ErrProfileNotFound),
			want: KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPartialFailureError_CarriesTransaction(t *testing.T) {
	txn := entity.NewTransaction(uuid.New(), entity.TransactionTypeIncome, decimal.NewFromInt(120), uuid.New(), testDate, "salary", nil, "")
	goalID := uuid.New()
	cause := errors.New("deadlock detected")

	err := fmt.Errorf("commit: %w", NewPartialFailureError(txn, goalID, cause))

	var partial *PartialFailureError
	if !errors.As(err, &partial) {
		t.Fatal("expected PartialFailureError in chain")
	}
	if partial.Transaction.ID != txn.ID {
		t.Errorf("expected transaction %s, got %s", txn.ID, partial.Transaction.ID)
	}
	if !partial.Amount.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected amount 120, got %s", partial.Amount)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
	if !IsRetryable(err) {
		t.Error("partial failures are retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(NewDependencyError("gemini", "AI_AUTH_ERROR", "bad key", false, nil)) {
		t.Error("auth failures must not be retryable")
	}
	if !IsRetryable(NewDependencyError("gemini", "AI_TIMEOUT", "timed out", true, nil)) {
		t.Error("timeouts must be retryable")
	}
	if IsRetryable(NewGoalError(ErrCodeInvalidTargetAmount, "target must be positive", ErrInvalidTargetAmount)) {
		t.Error("validation errors must not be retryable")
	}
}

var testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
