package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// SupportedMIMETypes lists the document types accepted for extraction.
var SupportedMIMETypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// PreviewReceiptInput represents an uploaded document.
type PreviewReceiptInput struct {
	Document adapter.ReceiptDocument
}

// RejectedRecord is an extracted record that failed strict parsing.
type RejectedRecord struct {
	Index  int
	Record adapter.ExtractedRecord
	Reason string
}

// PreviewReceiptOutput lists valid candidates for the user to approve.
type PreviewReceiptOutput struct {
	Candidates []*entity.ReceiptCandidate
	Rejected   []RejectedRecord
}

// PreviewReceiptUseCase extracts and validates candidates without writing.
type PreviewReceiptUseCase struct {
	extractor adapter.ReceiptExtractor
	maxBytes  int64
	timeout   time.Duration
}

// NewPreviewReceiptUseCase creates a new PreviewReceiptUseCase instance.
func NewPreviewReceiptUseCase(extractor adapter.ReceiptExtractor, maxBytes int64, timeout time.Duration) *PreviewReceiptUseCase {
	return &PreviewReceiptUseCase{
		extractor: extractor,
		maxBytes:  maxBytes,
		timeout:   timeout,
	}
}

// Execute performs the extraction.
func (uc *PreviewReceiptUseCase) Execute(ctx context.Context, input PreviewReceiptInput) (*PreviewReceiptOutput, error) {
	doc := input.Document

	// Validate the document
	if len(doc.Data) == 0 {
		return nil, domainerror.NewReceiptError(domainerror.ErrCodeEmptyDocument, "document is empty", domainerror.ErrEmptyDocument)
	}
	if uc.maxBytes > 0 && int64(len(doc.Data)) > uc.maxBytes {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeDocumentTooLarge,
			fmt.Sprintf("document exceeds %d bytes", uc.maxBytes),
			domainerror.ErrDocumentTooLarge,
		)
	}
	mimeType := detectMIMEType(doc)
	if !isSupported(mimeType) {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeUnsupportedDocumentType,
			fmt.Sprintf("document type %q is not supported", mimeType),
			domainerror.ErrUnsupportedDocumentType,
		)
	}
	doc.MIMEType = mimeType

	if uc.extractor == nil || !uc.extractor.IsAvailable() {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeExtractorUnavailable,
			"receipt extraction is not configured",
			domainerror.ErrExtractorUnavailable,
		)
	}

	extractCtx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	records, err := uc.extractor.Extract(extractCtx, doc)
	if err != nil {
		classified := classifyError(err)
		slog.Warn("Receipt extraction failed",
			"fileName", doc.FileName,
			"code", classified.Code,
			"retryable", classified.Retryable,
			"error", err,
		)
		return nil, classified
	}

	output := &PreviewReceiptOutput{
		Candidates: make([]*entity.ReceiptCandidate, 0, len(records)),
	}
	for i, record := range records {
		candidate, err := ParseCandidate(record)
		if err != nil {
			output.Rejected = append(output.Rejected, RejectedRecord{Index: i, Record: record, Reason: err.Error()})
			continue
		}
		output.Candidates = append(output.Candidates, candidate)
	}

	slog.Info("Receipt previewed",
		"fileName", doc.FileName,
		"records", len(records),
		"candidates", len(output.Candidates),
		"rejected", len(output.Rejected),
	)
	return output, nil
}

// detectMIMEType trusts the declared type unless it is missing or generic.
func detectMIMEType(doc adapter.ReceiptDocument) string {
	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(doc.MIMEType, ";", 2)[0]))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return strings.SplitN(http.DetectContentType(doc.Data), ";", 2)[0]
}

func isSupported(mimeType string) bool {
	for _, supported := range SupportedMIMETypes {
		if mimeType == supported {
			return true
		}
	}
	return false
}
