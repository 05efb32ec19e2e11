package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/application/usecase/transaction"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
)

// Ledger commits a single entry.
type Ledger interface {
	Execute(ctx context.Context, input transaction.CommitTransactionInput) (*transaction.CommitTransactionOutput, error)
}

// ImportReceiptInput carries the records the user approved after a preview.
// Records are parsed again since the client may have edited them.
type ImportReceiptInput struct {
	UserID  uuid.UUID
	Records []adapter.ExtractedRecord
}

// ImportResult is the outcome of one approved record.
type ImportResult struct {
	Index       int
	Transaction *transaction.TransactionOutput
	Err         error
}

// ImportReceiptOutput reports per-record outcomes.
type ImportReceiptOutput struct {
	Results  []ImportResult
	Imported int
	Failed   int
}

// ImportReceiptUseCase commits approved candidates through the ledger as if
// entered manually, tagged with the receipt source.
type ImportReceiptUseCase struct {
	ledger       Ledger
	categoryRepo adapter.CategoryRepository
}

// NewImportReceiptUseCase creates a new ImportReceiptUseCase instance.
func NewImportReceiptUseCase(ledger Ledger, categoryRepo adapter.CategoryRepository) *ImportReceiptUseCase {
	return &ImportReceiptUseCase{
		ledger:       ledger,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the import. A failed record does not stop the others.
func (uc *ImportReceiptUseCase) Execute(ctx context.Context, input ImportReceiptInput) (*ImportReceiptOutput, error) {
	if len(input.Records) == 0 {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeNoCandidates,
			"at least one record is required",
			domainerror.ErrInvalidReceiptCandidate,
		)
	}

	output := &ImportReceiptOutput{
		Results: make([]ImportResult, len(input.Records)),
	}
	for i, record := range input.Records {
		result := ImportResult{Index: i}
		result.Transaction, result.Err = uc.importOne(ctx, input.UserID, record)
		if result.Err != nil {
			output.Failed++
		} else {
			output.Imported++
		}
		output.Results[i] = result
	}

	slog.Info("Receipt imported",
		"userID", input.UserID,
		"imported", output.Imported,
		"failed", output.Failed,
	)
	return output, nil
}

func (uc *ImportReceiptUseCase) importOne(ctx context.Context, userID uuid.UUID, record adapter.ExtractedRecord) (*transaction.TransactionOutput, error) {
	candidate, err := ParseCandidate(record)
	if err != nil {
		return nil, err
	}

	categoryID, err := uc.categoryFor(ctx, candidate)
	if err != nil {
		return nil, err
	}

	out, err := uc.ledger.Execute(ctx, transaction.CommitTransactionInput{
		UserID:      userID,
		Type:        candidate.Type,
		Amount:      candidate.Amount,
		CategoryID:  categoryID,
		Date:        candidate.Date,
		Description: candidate.LedgerDescription(),
		Source:      entity.TransactionSourceReceipt,
	})
	if err != nil {
		return nil, err
	}
	return out.Transaction, nil
}

// categoryFor maps the extracted label onto the catalog. A nil id lets the
// ledger fall back to suggestion and then to "Other".
func (uc *ImportReceiptUseCase) categoryFor(ctx context.Context, candidate *entity.ReceiptCandidate) (*uuid.UUID, error) {
	cat, err := uc.categoryRepo.FindByName(ctx, candidate.CategoryName, candidate.Type.CategoryType())
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	return &cat.ID, nil
}
