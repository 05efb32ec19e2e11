package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/application/usecase/receipt"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// ReceiptRecord is an extracted record as shown to and returned by the user.
type ReceiptRecord struct {
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

// ReceiptCandidateResponse is a record that passed validation.
type ReceiptCandidateResponse struct {
	Merchant    string          `json:"merchant"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
}

// RejectedRecordResponse is a record that failed validation.
type RejectedRecordResponse struct {
	Index  int           `json:"index"`
	Record ReceiptRecord `json:"record"`
	Reason string        `json:"reason"`
}

// PreviewReceiptResponse represents the extraction preview.
type PreviewReceiptResponse struct {
	Candidates []ReceiptCandidateResponse `json:"candidates"`
	Rejected   []RejectedRecordResponse   `json:"rejected"`
}

// ImportReceiptRequest carries the records the user approved.
type ImportReceiptRequest struct {
	Transactions []ReceiptRecord `json:"transactions" binding:"required"`
}

// ImportResultResponse reports the outcome of one record.
type ImportResultResponse struct {
	Index       int                  `json:"index"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Error       *ErrorResponse       `json:"error,omitempty"`
}

// ImportReceiptResponse represents the import outcome.
type ImportReceiptResponse struct {
	Results  []ImportResultResponse `json:"results"`
	Imported int                    `json:"imported"`
	Failed   int                    `json:"failed"`
}

// ToExtractedRecords converts approved records for the use case.
func ToExtractedRecords(records []ReceiptRecord) []adapter.ExtractedRecord {
	out := make([]adapter.ExtractedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, adapter.ExtractedRecord(r))
	}
	return out
}

func toReceiptCandidateResponse(c *entity.ReceiptCandidate) ReceiptCandidateResponse {
	return ReceiptCandidateResponse{
		Merchant:    c.Merchant,
		Amount:      c.Amount,
		Date:        formatDate(c.Date),
		Category:    c.CategoryName,
		Description: c.Description,
		Type:        string(c.Type),
	}
}

// ToPreviewReceiptResponse converts a preview output.
func ToPreviewReceiptResponse(output *receipt.PreviewReceiptOutput) PreviewReceiptResponse {
	response := PreviewReceiptResponse{
		Candidates: make([]ReceiptCandidateResponse, 0, len(output.Candidates)),
		Rejected:   make([]RejectedRecordResponse, 0, len(output.Rejected)),
	}
	for _, c := range output.Candidates {
		response.Candidates = append(response.Candidates, toReceiptCandidateResponse(c))
	}
	for _, r := range output.Rejected {
		response.Rejected = append(response.Rejected, RejectedRecordResponse{
			Index:  r.Index,
			Record: ReceiptRecord(r.Record),
			Reason: r.Reason,
		})
	}
	return response
}
