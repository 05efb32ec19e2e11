// Package error defines domain-specific errors for the finance coach.
package error

import "errors"

// Progression domain errors.
var (
	// ErrProfileNotFound is returned when the user has no profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrMissingProfileUser is returned when a progression request has no user id.
	ErrMissingProfileUser = errors.New("user id is required")

	// ErrXPOutOfRange is returned when an action's xp is negative or above the cap.
	ErrXPOutOfRange = errors.New("xp delta out of range")

	// ErrUnknownAction is returned when an action has no configured xp value.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidFullName is returned when the full name is too long.
	ErrInvalidFullName = errors.New("invalid full name")
)

// ProgressionErrorCode defines error codes for progression errors.
// Format: PRG-XXYYYY where XX is category and YYYY is specific error.
type ProgressionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeProgressionMissingUser ProgressionErrorCode = "PRG-010001"
	ErrCodeXPOutOfRange           ProgressionErrorCode = "PRG-010002"
	ErrCodeUnknownAction          ProgressionErrorCode = "PRG-010003"
	ErrCodeInvalidFullName        ProgressionErrorCode = "PRG-010004"

	// Lookup errors (02XXXX)
	ErrCodeProfileNotFound ProgressionErrorCode = "PRG-020001"
)

// ProgressionError represents a progression error with code and message.
type ProgressionError struct {
	Code    ProgressionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProgressionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProgressionError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *ProgressionError) Kind() Kind {
	if e.Code == ErrCodeProfileNotFound {
		return KindNotFound
	}
	return KindValidation
}

// NewProgressionError creates a new ProgressionError with the given code and message.
func NewProgressionError(code ProgressionErrorCode, message string, err error) *ProgressionError {
	return &ProgressionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
