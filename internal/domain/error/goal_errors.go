// Package error defines domain-specific errors for the finance coach.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal does not exist or belongs to another user.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidGoalTitle is returned when the goal title is empty or too long.
	ErrInvalidGoalTitle = errors.New("invalid goal title")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidContributionAmount is returned when a contribution is zero or negative.
	ErrInvalidContributionAmount = errors.New("invalid contribution amount")

	// ErrInvalidGoalStatus is returned when a status filter is unknown.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrGoalNotActive is returned when a goal no longer accepts contributions.
	ErrGoalNotActive = errors.New("goal is not active")

	// ErrMissingGoalFields is returned when a required goal field is absent.
	ErrMissingGoalFields = errors.New("missing required goal fields")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidGoalTitle          GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount       GoalErrorCode = "GOL-010002"
	ErrCodeInvalidContributionAmount GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalStatus         GoalErrorCode = "GOL-010004"
	ErrCodeMissingGoalFields         GoalErrorCode = "GOL-010005"

	// Lookup errors (02XXXX)
	ErrCodeGoalNotFound GoalErrorCode = "GOL-020001"

	// State errors (03XXXX)
	ErrCodeGoalNotActive GoalErrorCode = "GOL-030001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *GoalError) Kind() Kind {
	switch e.Code {
	case ErrCodeGoalNotFound:
		return KindNotFound
	case ErrCodeGoalNotActive:
		return KindInvalidState
	default:
		return KindValidation
	}
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
