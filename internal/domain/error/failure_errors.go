// Package error defines domain-specific errors for the finance coach.
package error

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// ErrCodeContributionNotApplied is the code reported for a committed
// transaction whose goal contribution failed.
const ErrCodeContributionNotApplied = "TXN-050001"

// PartialFailureError reports that a transaction was committed but its goal
// contribution was not applied. Retry only the contribution.
type PartialFailureError struct {
	Transaction *entity.Transaction
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Err         error
}

// Error implements the error interface.
func (e *PartialFailureError) Error() string {
	msg := fmt.Sprintf("transaction %s committed but contribution to goal %s failed", e.Transaction.ID, e.GoalID)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *PartialFailureError) Kind() Kind {
	return KindPartialFailure
}

// NewPartialFailureError creates a new PartialFailureError.
func NewPartialFailureError(transaction *entity.Transaction, goalID uuid.UUID, err error) *PartialFailureError {
	return &PartialFailureError{
		Transaction: transaction,
		GoalID:      goalID,
		Amount:      transaction.Amount,
		Err:         err,
	}
}

// DependencyError reports an unreachable or failing collaborator.
type DependencyError struct {
	Dependency string
	Code       string
	Message    string
	Retryable  bool
	Err        error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	msg := e.Dependency + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *DependencyError) Kind() Kind {
	return KindDependencyFailure
}

// NewDependencyError creates a new DependencyError.
func NewDependencyError(dependency, code, message string, retryable bool, err error) *DependencyError {
	return &DependencyError{
		Dependency: dependency,
		Code:       code,
		Message:    message,
		Retryable:  retryable,
		Err:        err,
	}
}
