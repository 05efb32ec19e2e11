package controller

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/application/usecase/receipt"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
)

// ReceiptController handles the two-step receipt flow: preview then import.
type ReceiptController struct {
	previewUseCase *receipt.PreviewReceiptUseCase
	importUseCase  *receipt.ImportReceiptUseCase
	maxBytes       int64
}

// NewReceiptController creates a new receipt controller instance.
func NewReceiptController(
	previewUseCase *receipt.PreviewReceiptUseCase,
	importUseCase *receipt.ImportReceiptUseCase,
	maxBytes int64,
) *ReceiptController {
	return &ReceiptController{
		previewUseCase: previewUseCase,
		importUseCase:  importUseCase,
		maxBytes:       maxBytes,
	}
}

// Preview handles POST /receipts/preview requests with a multipart "file" field.
func (c *ReceiptController) Preview(ctx *gin.Context) {
	if _, ok := currentUser(ctx); !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, "A file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(ctx, "Uploaded file could not be read")
		return
	}
	defer file.Close()

	// Read one byte past the limit so oversize uploads are rejected by the use case.
	reader := io.Reader(file)
	if c.maxBytes > 0 {
		reader = io.LimitReader(file, c.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		badRequest(ctx, fmt.Sprintf("Uploaded file could not be read: %v", err))
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), receipt.PreviewReceiptInput{
		Document: adapter.ReceiptDocument{
			Data:     data,
			MIMEType: fileHeader.Header.Get("Content-Type"),
			FileName: fileHeader.Filename,
		},
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewReceiptResponse(output))
}

// Import handles POST /receipts/import requests. Each record is committed
// independently; the response reports per-record outcomes.
func (c *ReceiptController) Import(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.ImportReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), receipt.ImportReceiptInput{
		UserID:  userID,
		Records: dto.ToExtractedRecords(req.Transactions),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.ImportReceiptResponse{
		Results:  make([]dto.ImportResultResponse, 0, len(output.Results)),
		Imported: output.Imported,
		Failed:   output.Failed,
	}
	for _, result := range output.Results {
		item := dto.ImportResultResponse{Index: result.Index}
		if result.Transaction != nil {
			txn := dto.ToTransactionResponse(result.Transaction)
			item.Transaction = &txn
		}
		if result.Err != nil {
			body := ErrorBody(result.Err)
			item.Error = &body
		}
		response.Results = append(response.Results, item)
	}

	status := http.StatusCreated
	if output.Failed > 0 {
		status = http.StatusMultiStatus
	}
	ctx.JSON(status, response)
}
