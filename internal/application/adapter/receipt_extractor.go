// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// ReceiptDocument is an uploaded receipt, invoice or statement.
type ReceiptDocument struct {
	Data     []byte
	MIMEType string
	FileName string
}

// ExtractedRecord is the raw, untrusted output of an extraction backend.
// Values are kept as reported so the caller can validate them strictly.
type ExtractedRecord struct {
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

// ReceiptExtractor turns a document into candidate transaction records.
type ReceiptExtractor interface {
	// Extract returns the records found in the document. Implementations must honor ctx deadlines.
	Extract(ctx context.Context, document ReceiptDocument) ([]ExtractedRecord, error)

	// IsAvailable reports whether the extractor is configured.
	IsAvailable() bool
}
