package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits stored for money amounts.
const AmountScale = 2

// MaxAmount is the exclusive upper bound of a decimal(15,2) column.
var MaxAmount = decimal.New(1, 13)

// AmountViolation reports why amount cannot be stored as money, or "" when it can.
func AmountViolation(amount decimal.Decimal) string {
	switch {
	case !amount.IsPositive():
		return "must be greater than zero"
	case !amount.Equal(amount.Round(AmountScale)):
		return fmt.Sprintf("must have at most %d decimal places", AmountScale)
	case amount.GreaterThanOrEqual(MaxAmount):
		return "is too large"
	}
	return ""
}
