// Package error defines domain-specific errors for the finance coach.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrMissingUserID is returned when an operation has no owning user.
	ErrMissingUserID = errors.New("user id is required")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the amount is not a positive decimal.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category does not exist.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryTypeMismatch is returned when the category type differs from the transaction type.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrNoCategoryAvailable is returned when no category could be assigned.
	ErrNoCategoryAvailable = errors.New("no category available")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrGoalOnExpense is returned when an expense references a goal.
	ErrGoalOnExpense = errors.New("only income can be linked to a goal")

	// ErrGoalLinkedTransaction is returned when a change would rewrite a goal contribution.
	ErrGoalLinkedTransaction = errors.New("transaction is linked to a goal")

	// ErrTransactionNotGoalLinked is returned when a contribution retry targets an unlinked transaction.
	ErrTransactionNotGoalLinked = errors.New("transaction is not linked to a goal")

	// ErrMissingTransactionData is returned when an update carries no field.
	ErrMissingTransactionData = errors.New("no transaction fields provided")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingUserID          TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionType TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidAmount          TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidDate            TransactionErrorCode = "TXN-010004"
	ErrCodeDescriptionTooLong     TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound    TransactionErrorCode = "TXN-010006"
	ErrCodeCategoryTypeMismatch   TransactionErrorCode = "TXN-010007"
	ErrCodeGoalOnExpense          TransactionErrorCode = "TXN-010008"
	ErrCodeNoCategoryAvailable    TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionData TransactionErrorCode = "TXN-010010"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"

	// State errors (03XXXX)
	ErrCodeGoalLinkedTransaction    TransactionErrorCode = "TXN-030001"
	ErrCodeTransactionNotGoalLinked TransactionErrorCode = "TXN-030002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *TransactionError) Kind() Kind {
	switch e.Code {
	case ErrCodeTransactionNotFound:
		return KindNotFound
	case ErrCodeGoalLinkedTransaction, ErrCodeTransactionNotGoalLinked:
		return KindInvalidState
	default:
		return KindValidation
	}
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
