// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// CategoryType returns the category type a transaction of this type must reference.
func (t TransactionType) CategoryType() CategoryType {
	return CategoryType(t)
}

// TransactionSource records how an entry reached the ledger.
type TransactionSource string

const (
	TransactionSourceManual  TransactionSource = "manual"
	TransactionSourceReceipt TransactionSource = "receipt"
)

// Transaction represents an income or expense entry in the ledger.
// Amount is always positive; the direction comes from Type.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
	GoalID      *uuid.UUID // Income only
	Source      TransactionSource
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity. The date is truncated to the calendar day in UTC.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID uuid.UUID,
	date time.Time,
	description string,
	goalID *uuid.UUID,
	source TransactionSource,
) *Transaction {
	now := time.Now().UTC()
	if source == "" {
		source = TransactionSourceManual
	}

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		CategoryID:  categoryID,
		Date:        CalendarDate(date),
		Description: description,
		GoalID:      goalID,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsGoalLinked reports whether the transaction is income that contributed to a goal.
func (t *Transaction) IsGoalLinked() bool {
	return t.Type == TransactionTypeIncome && t.GoalID != nil
}

// CalendarDate truncates a timestamp to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TransactionTotals represents aggregated totals for a user's ledger.
type TransactionTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// NewTransactionTotals computes the balance from income and expense sums.
func NewTransactionTotals(income, expense decimal.Decimal) TransactionTotals {
	return TransactionTotals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}
