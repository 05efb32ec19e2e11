// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/middleware"
)

// Error codes produced by the HTTP layer itself.
const (
	ErrCodeInvalidRequest = "API-010001"
	ErrCodeInternal       = "API-050001"
)

// statusForKind maps the failure taxonomy to HTTP status codes.
func statusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindInvalidState:
		return http.StatusConflict
	case domainerror.KindPartialFailure:
		return http.StatusMultiStatus
	case domainerror.KindDependencyFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody builds the response body for a domain error.
func ErrorBody(err error) dto.ErrorResponse {
	kind := domainerror.KindOf(err)
	response := dto.ErrorResponse{
		Error:     "An internal error occurred",
		Code:      ErrCodeInternal,
		Kind:      string(kind),
		Retryable: domainerror.IsRetryable(err),
	}

	var (
		txnErr      *domainerror.TransactionError
		goalErr     *domainerror.GoalError
		categoryErr *domainerror.CategoryError
		progressErr *domainerror.ProgressionError
		receiptErr  *domainerror.ReceiptError
		depErr      *domainerror.DependencyError
		partialErr  *domainerror.PartialFailureError
	)
	switch {
	case errors.As(err, &partialErr):
		response.Error, response.Code = partialErr.Error(), domainerror.ErrCodeContributionNotApplied
	case errors.As(err, &depErr):
		response.Error, response.Code = depErr.Message, depErr.Code
	case errors.As(err, &txnErr):
		response.Error, response.Code = txnErr.Message, string(txnErr.Code)
	case errors.As(err, &goalErr):
		response.Error, response.Code = goalErr.Message, string(goalErr.Code)
	case errors.As(err, &categoryErr):
		response.Error, response.Code = categoryErr.Message, string(categoryErr.Code)
	case errors.As(err, &progressErr):
		response.Error, response.Code = progressErr.Message, string(progressErr.Code)
	case errors.As(err, &receiptErr):
		response.Error, response.Code = receiptErr.Message, string(receiptErr.Code)
	case kind == domainerror.KindNotFound || kind == domainerror.KindInvalidState:
		response.Error, response.Code = err.Error(), ""
	}
	return response
}

// respondError writes err with the status of its kind.
func respondError(ctx *gin.Context, err error) {
	body := ErrorBody(err)
	status := statusForKind(domainerror.KindOf(err))
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", status,
			"error", err,
		)
	}
	ctx.JSON(status, body)
}

// currentUser reads the caller resolved by middleware.RequireUser.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not identified",
			Code:  middleware.ErrCodeMissingUser,
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a UUID path parameter.
func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  ErrCodeInvalidRequest,
		Kind:  string(domainerror.KindValidation),
	})
}
