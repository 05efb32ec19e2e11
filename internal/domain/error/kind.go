// Package error defines domain-specific errors for the finance coach.
package error

import (
	"context"
	"errors"
)

// Kind is the caller-facing failure class of an error.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInvalidState      Kind = "invalid_state"
	KindPartialFailure    Kind = "partial_failure"
	KindDependencyFailure Kind = "dependency_failure"
)

// Kinded is implemented by every typed domain error.
type Kinded interface {
	error
	Kind() Kind
}

// sentinelKinds classifies bare sentinel errors returned by repositories.
var sentinelKinds = []struct {
	err  error
	kind Kind
}{
	{ErrTransactionNotFound, KindNotFound},
	{ErrGoalNotFound, KindNotFound},
	{ErrCategoryNotFound, KindNotFound},
	{ErrProfileNotFound, KindNotFound},
	{ErrGoalNotActive, KindInvalidState},
}

// KindOf classifies err. Errors that carry no domain classification are
// treated as dependency failures. KindOf(nil) returns "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}

	for _, s := range sentinelKinds {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}

	return KindDependencyFailure
}

// IsRetryable reports whether a caller-driven retry may succeed.
func IsRetryable(err error) bool {
	var depErr *DependencyError
	if errors.As(err, &depErr) {
		return depErr.Retryable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch KindOf(err) {
	case KindPartialFailure, KindDependencyFailure:
		return true
	default:
		return false
	}
}
