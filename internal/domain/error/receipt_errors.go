// Package error defines domain-specific errors for the finance coach.
package error

import "errors"

// Receipt domain errors.
var (
	// ErrEmptyDocument is returned when the uploaded document has no content.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrDocumentTooLarge is returned when the uploaded document exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrUnsupportedDocumentType is returned when the document mime type is not accepted.
	ErrUnsupportedDocumentType = errors.New("unsupported document type")

	// ErrInvalidReceiptCandidate is returned when an extracted record fails strict parsing.
	ErrInvalidReceiptCandidate = errors.New("invalid receipt candidate")

	// ErrExtractorUnavailable is returned when no extraction backend is configured.
	ErrExtractorUnavailable = errors.New("receipt extractor is not configured")
)

// ReceiptErrorCode defines error codes for receipt errors.
// Format: RCP-XXYYYY where XX is category and YYYY is specific error.
type ReceiptErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyDocument           ReceiptErrorCode = "RCP-010001"
	ErrCodeDocumentTooLarge        ReceiptErrorCode = "RCP-010002"
	ErrCodeUnsupportedDocumentType ReceiptErrorCode = "RCP-010003"
	ErrCodeInvalidReceiptCandidate ReceiptErrorCode = "RCP-010004"
	ErrCodeNoCandidates            ReceiptErrorCode = "RCP-010005"

	// Dependency errors (04XXXX)
	ErrCodeExtractorUnavailable ReceiptErrorCode = "RCP-040001"
)

// ReceiptError represents a receipt error with code and message.
type ReceiptError struct {
	Code    ReceiptErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReceiptError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReceiptError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *ReceiptError) Kind() Kind {
	if e.Code == ErrCodeExtractorUnavailable {
		return KindDependencyFailure
	}
	return KindValidation
}

// NewReceiptError creates a new ReceiptError with the given code and message.
func NewReceiptError(code ReceiptErrorCode, message string, err error) *ReceiptError {
	return &ReceiptError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
