package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/usecase/goal"
	"github.com/finance-tracker/coach/internal/application/usecase/transaction"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
)

// TransactionController handles ledger endpoints.
type TransactionController struct {
	commitUseCase *transaction.CommitTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	totalsUseCase *transaction.GetTotalsUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	removeUseCase *transaction.RemoveTransactionUseCase
	retryUseCase  *goal.RetryContributionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	commitUseCase *transaction.CommitTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	totalsUseCase *transaction.GetTotalsUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	removeUseCase *transaction.RemoveTransactionUseCase,
	retryUseCase *goal.RetryContributionUseCase,
) *TransactionController {
	return &TransactionController{
		commitUseCase: commitUseCase,
		listUseCase:   listUseCase,
		totalsUseCase: totalsUseCase,
		updateUseCase: updateUseCase,
		removeUseCase: removeUseCase,
		retryUseCase:  retryUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	date, err := transaction.ParseDate(req.Date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	input := transaction.CommitTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionType(req.Type),
		Amount:      *req.Amount,
		CategoryID:  parseOptionalID(req.CategoryID),
		Date:        date,
		Description: req.Description,
		GoalID:      parseOptionalID(req.GoalID),
		Source:      entity.TransactionSourceManual,
	}

	output, err := c.commitUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var partialErr *domainerror.PartialFailureError
		if errors.As(err, &partialErr) && output != nil {
			ctx.JSON(http.StatusMultiStatus, dto.PartialFailureResponse{
				Error:       "Transaction saved but the goal was not updated. Retry the contribution.",
				Code:        domainerror.ErrCodeContributionNotApplied,
				Kind:        string(domainerror.KindPartialFailure),
				Transaction: dto.ToTransactionResponse(output.Transaction),
				GoalID:      partialErr.GoalID.String(),
			})
			return
		}
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCommitTransactionResponse(output))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	var err error
	if input.StartDate, err = queryDate(ctx, "startDate"); err != nil {
		respondError(ctx, err)
		return
	}
	if input.EndDate, err = queryDate(ctx, "endDate"); err != nil {
		respondError(ctx, err)
		return
	}

	if categoryIDsStr := ctx.Query("categoryIds"); categoryIDsStr != "" {
		for _, idStr := range strings.Split(categoryIDsStr, ",") {
			id, err := uuid.Parse(strings.TrimSpace(idStr))
			if err != nil {
				badRequest(ctx, "Invalid category ID format")
				return
			}
			input.CategoryIDs = append(input.CategoryIDs, id)
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}

	if goalIDStr := ctx.Query("goalId"); goalIDStr != "" {
		goalID, err := uuid.Parse(goalIDStr)
		if err != nil {
			badRequest(ctx, "Invalid goal ID format")
			return
		}
		input.GoalID = &goalID
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Totals handles GET /transactions/totals requests.
func (c *TransactionController) Totals(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := transaction.GetTotalsInput{UserID: userID}
	var err error
	if input.StartDate, err = queryDate(ctx, "startDate"); err != nil {
		respondError(ctx, err)
		return
	}
	if input.EndDate, err = queryDate(ctx, "endDate"); err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.totalsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTotalsResponse(output))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Amount:        req.Amount,
		CategoryID:    parseOptionalID(req.CategoryID),
		Description:   req.Description,
	}
	if req.Date != nil {
		date, err := transaction.ParseDate(*req.Date)
		if err != nil {
			respondError(ctx, err)
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	input := transaction.RemoveTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	}
	if err := c.removeUseCase.Execute(ctx.Request.Context(), input); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RetryContribution handles POST /transactions/:id/contribution requests.
func (c *TransactionController) RetryContribution(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	input := goal.RetryContributionInput{
		UserID:        userID,
		TransactionID: transactionID,
	}
	output, err := c.retryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContributionResponse(output))
}

// parseOptionalID parses an id already validated by the binding tags.
func parseOptionalID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

func queryDate(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	date, err := transaction.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
