package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for committing a transaction.
// Amounts are accepted as JSON numbers or decimal strings.
type CreateTransactionRequest struct {
	Type        string           `json:"type" binding:"required,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Date        string           `json:"date" binding:"required"`
	Description string           `json:"description"`
	GoalID      *string          `json:"goal_id,omitempty" binding:"omitempty,uuid"`
}

// UpdateTransactionRequest represents the request body for a transaction patch.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Type        string            `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	CategoryID  string            `json:"category_id"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	GoalID      *string           `json:"goal_id,omitempty"`
	Source      string            `json:"source"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CommitTransactionResponse represents the response for a commit.
type CommitTransactionResponse struct {
	Transaction  TransactionResponse `json:"transaction"`
	GoalApplied  bool                `json:"goal_applied"`
	GoalAchieved bool                `json:"goal_achieved"`
	XPAwarded    bool                `json:"xp_awarded"`
}

// PartialFailureResponse is returned when a transaction was stored but its
// goal contribution was not. Retry the contribution endpoint.
type PartialFailureResponse struct {
	Error       string              `json:"error"`
	Code        string              `json:"code"`
	Kind        string              `json:"kind"`
	Transaction TransactionResponse `json:"transaction"`
	GoalID      string              `json:"goal_id"`
}

// PaginationResponse represents pagination information.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// TotalsResponse represents income and expense sums.
type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(t *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Type:        string(t.Type),
		Amount:      t.Amount,
		CategoryID:  t.CategoryID.String(),
		Date:        formatDate(t.Date),
		Description: t.Description,
		Source:      string(t.Source),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Category != nil {
		category := ToCategoryResponse(t.Category)
		response.Category = &category
	}
	if t.GoalID != nil {
		goalID := t.GoalID.String()
		response.GoalID = &goalID
	}
	return response
}

// ToCommitTransactionResponse converts a commit output.
func ToCommitTransactionResponse(output *transaction.CommitTransactionOutput) CommitTransactionResponse {
	return CommitTransactionResponse{
		Transaction:  ToTransactionResponse(output.Transaction),
		GoalApplied:  output.GoalApplied,
		GoalAchieved: output.GoalAchieved,
		XPAwarded:    output.XPAwarded,
	}
}

// ToTransactionListResponse converts a list output.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	response := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(output.Transactions)),
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
	for _, t := range output.Transactions {
		response.Transactions = append(response.Transactions, ToTransactionResponse(t))
	}
	return response
}

// ToTotalsResponse converts a totals output.
func ToTotalsResponse(output *transaction.GetTotalsOutput) TotalsResponse {
	return TotalsResponse{
		Income:  output.Totals.Income,
		Expense: output.Totals.Expense,
		Balance: output.Totals.Balance,
	}
}
