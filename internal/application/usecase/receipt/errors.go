// Package receipt contains the receipt ingestion use cases: strict parsing of
// extracted records, preview and import through the ledger.
package receipt

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// ExtractorDependency names the receipt extraction collaborator in errors.
const ExtractorDependency = "receipt_extractor"

// Error code constants for extraction failures.
const (
	ErrCodeAIServiceUnavailable = "AI_SERVICE_UNAVAILABLE"
	ErrCodeAIRateLimited        = "AI_RATE_LIMITED"
	ErrCodeAIAuthError          = "AI_AUTH_ERROR"
	ErrCodeAITimeout            = "AI_TIMEOUT"
	ErrCodeAIParseError         = "AI_PARSE_ERROR"
	ErrCodeAIUnknownError       = "AI_UNKNOWN_ERROR"
)

var errorMessages = map[string]string{
	ErrCodeAIServiceUnavailable: "The receipt reader is temporarily unavailable. Try again later.",
	ErrCodeAIRateLimited:        "Too many receipt requests. Wait a few minutes and try again.",
	ErrCodeAIAuthError:          "The receipt reader is misconfigured. Contact support.",
	ErrCodeAITimeout:            "Reading the document took too long. Try a smaller or clearer file.",
	ErrCodeAIParseError:         "The receipt reader returned an unreadable answer. Try again.",
	ErrCodeAIUnknownError:       "Something went wrong while reading the document. Try again.",
}

// classifyError converts an extractor failure into a DependencyError with a
// code, a user-facing message and a retryable flag.
func classifyError(err error) *domainerror.DependencyError {
	code, retryable := classify(err)
	return domainerror.NewDependencyError(ExtractorDependency, code, errorMessages[code], retryable, err)
}

func classify(err error) (string, bool) {
	errStr := strings.ToLower(err.Error())

	// Check for timeout/cancellation (context errors)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrCodeAITimeout, true
	}

	// Check for rate limiting
	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return ErrCodeAIRateLimited, true
	}

	// Check for authentication errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") || strings.Contains(errStr, "permission denied") {
		return ErrCodeAIAuthError, false
	}

	// Check for network/connection errors
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return ErrCodeAIServiceUnavailable, true
	}

	// Check for parse errors
	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return ErrCodeAIParseError, true
	}

	return ErrCodeAIUnknownError, true
}
