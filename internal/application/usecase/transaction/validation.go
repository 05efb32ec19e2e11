package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// AmountScale is the number of fractional digits stored for amounts.
	AmountScale = entity.AmountScale
)

// ParseAmount parses a decimal string and validates it as a ledger amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("amount %q is not a decimal number", raw),
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func validateUserID(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}
	return nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if violation := entity.AmountViolation(amount); violation != "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount "+violation,
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func validateDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDate,
			fmt.Sprintf("date %q must use the YYYY-MM-DD format", raw),
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return date, nil
}
