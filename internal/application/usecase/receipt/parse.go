package receipt

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// ParseCandidate validates one untrusted extracted record. Every field is
// checked with the same amount rules as a manual entry; nothing is coerced
// except surrounding whitespace and letter case of enum values.
func ParseCandidate(record adapter.ExtractedRecord) (*entity.ReceiptCandidate, error) {
	merchant := strings.TrimSpace(record.Merchant)
	description := strings.TrimSpace(record.Description)
	if merchant == "" && description == "" {
		return nil, invalidCandidate("merchant or description is required")
	}

	amount, err := parseAmount(record.Amount)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(record.Date))
	if err != nil {
		return nil, invalidCandidate(fmt.Sprintf("date %q must use the YYYY-MM-DD format", record.Date))
	}

	categoryName, ok := canonicalCategory(record.Category)
	if !ok {
		return nil, invalidCandidate(fmt.Sprintf("category %q is not one of %s", record.Category, strings.Join(entity.ReceiptCategoryNames, ", ")))
	}

	transactionType := entity.TransactionType(strings.ToLower(strings.TrimSpace(record.Type)))
	if !transactionType.IsValid() {
		return nil, invalidCandidate(fmt.Sprintf("type %q must be 'income' or 'expense'", record.Type))
	}

	return &entity.ReceiptCandidate{
		Merchant:     merchant,
		Amount:       amount,
		Date:         date,
		CategoryName: categoryName,
		Description:  description,
		Type:         transactionType,
	}, nil
}

func parseAmount(raw float64) (decimal.Decimal, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return decimal.Zero, invalidCandidate("amount must be a finite number")
	}
	amount := decimal.NewFromFloat(raw)
	if violation := entity.AmountViolation(amount); violation != "" {
		return decimal.Zero, invalidCandidate("amount " + violation)
	}
	return amount, nil
}

func canonicalCategory(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	for _, allowed := range entity.ReceiptCategoryNames {
		if strings.EqualFold(name, allowed) {
			return allowed, true
		}
	}
	return "", false
}

func invalidCandidate(message string) error {
	return domainerror.NewReceiptError(
		domainerror.ErrCodeInvalidReceiptCandidate,
		message,
		domainerror.ErrInvalidReceiptCandidate,
	)
}
