// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptCategoryNames is the closed set of category labels accepted from extraction.
var ReceiptCategoryNames = []string{
	"Food & Dining",
	"Shopping",
	"Transportation",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	OtherCategoryName,
}

// ReceiptCandidate is an extracted record that passed strict parsing and can
// be submitted to the ledger.
type ReceiptCandidate struct {
	Merchant     string
	Amount       decimal.Decimal
	Date         time.Time
	CategoryName string
	Description  string
	Type         TransactionType
}

// LedgerDescription returns the description to store, falling back to the merchant.
func (c *ReceiptCandidate) LedgerDescription() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Merchant
}
