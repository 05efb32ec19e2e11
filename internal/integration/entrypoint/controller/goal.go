package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/coach/internal/application/usecase/goal"
	"github.com/finance-tracker/coach/internal/application/usecase/transaction"
	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	createUseCase     *goal.CreateGoalUseCase
	listUseCase       *goal.ListGoalsUseCase
	getUseCase        *goal.GetGoalUseCase
	cancelUseCase     *goal.CancelGoalUseCase
	contributeUseCase *goal.ContributeToGoalUseCase
	forecastUseCase   *goal.ForecastGoalUseCase
	overviewUseCase   *goal.GoalOverviewUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	createUseCase *goal.CreateGoalUseCase,
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	cancelUseCase *goal.CancelGoalUseCase,
	contributeUseCase *goal.ContributeToGoalUseCase,
	forecastUseCase *goal.ForecastGoalUseCase,
	overviewUseCase *goal.GoalOverviewUseCase,
) *GoalController {
	return &GoalController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		cancelUseCase:     cancelUseCase,
		contributeUseCase: contributeUseCase,
		forecastUseCase:   forecastUseCase,
		overviewUseCase:   overviewUseCase,
	}
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	input := goal.CreateGoalInput{
		UserID:       userID,
		Title:        req.Title,
		TargetAmount: *req.TargetAmount,
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := transaction.ParseDate(*req.Deadline)
		if err != nil {
			respondError(ctx, err)
			return
		}
		input.Deadline = &deadline
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := goal.ListGoalsInput{UserID: userID}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.GoalStatus(statusStr)
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{UserID: userID, GoalID: goalID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Cancel handles DELETE /goals/:id requests. Goals are cancelled, never deleted.
func (c *GoalController) Cancel(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.cancelUseCase.Execute(ctx.Request.Context(), goal.CancelGoalInput{UserID: userID, GoalID: goalID}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Contribute handles POST /goals/:id/contributions requests.
func (c *GoalController) Contribute(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ContributeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	input := goal.ContributeToGoalInput{
		UserID: userID,
		GoalID: goalID,
		Amount: *req.Amount,
	}
	output, err := c.contributeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContributionResponse(output))
}

// Forecast handles GET /goals/:id/forecast requests.
func (c *GoalController) Forecast(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.forecastUseCase.Execute(ctx.Request.Context(), goal.ForecastGoalInput{UserID: userID, GoalID: goalID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalForecastResponse(output))
}

// Overview handles GET /goals/overview requests.
func (c *GoalController) Overview(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), goal.GoalOverviewInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalOverviewResponse(output))
}
