package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/usecase/goal"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title        string           `json:"title" binding:"required"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     *string          `json:"deadline,omitempty"`
}

// ContributeRequest represents the request body for a manual contribution.
type ContributeRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Progress      float64         `json:"progress"`
	Deadline      *string         `json:"deadline,omitempty"`
	Status        string          `json:"status"`
	AchievedAt    *time.Time      `json:"achieved_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ContributionResponse represents the result of a contribution.
type ContributionResponse struct {
	Goal         GoalResponse `json:"goal"`
	Applied      bool         `json:"applied"`
	GoalAchieved bool         `json:"goal_achieved"`
}

// ForecastResponse represents a goal projection.
type ForecastResponse struct {
	GoalID          string          `json:"goal_id"`
	Status          string          `json:"status"`
	Remaining       decimal.Decimal `json:"remaining"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthsRemaining *int            `json:"months_remaining"`
	Message         string          `json:"message"`
}

// GoalForecastResponse pairs a goal with its projection.
type GoalForecastResponse struct {
	Goal     GoalResponse     `json:"goal"`
	Forecast ForecastResponse `json:"forecast"`
}

// GoalOverviewResponse summarizes active goals.
type GoalOverviewResponse struct {
	Goals          []GoalForecastResponse `json:"goals"`
	TrailingIncome decimal.Decimal        `json:"trailing_income"`
	TotalTarget    decimal.Decimal        `json:"total_target"`
	TotalSaved     decimal.Decimal        `json:"total_saved"`
}

// ToGoalResponse converts a GoalOutput to a GoalResponse DTO.
func ToGoalResponse(g *goal.GoalOutput) GoalResponse {
	return GoalResponse{
		ID:            g.ID.String(),
		UserID:        g.UserID.String(),
		Title:         g.Title,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Remaining:     g.Remaining,
		Progress:      g.Progress,
		Deadline:      formatOptionalDate(g.Deadline),
		Status:        string(g.Status),
		AchievedAt:    g.AchievedAt,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalListResponse converts goal outputs to a list response.
func ToGoalListResponse(goals []*goal.GoalOutput) GoalListResponse {
	response := GoalListResponse{
		Goals: make([]GoalResponse, 0, len(goals)),
	}
	for _, g := range goals {
		response.Goals = append(response.Goals, ToGoalResponse(g))
	}
	return response
}

// ToContributionResponse converts a contribution output.
func ToContributionResponse(output *goal.ContributeToGoalOutput) ContributionResponse {
	return ContributionResponse{
		Goal:         ToGoalResponse(output.Goal),
		Applied:      output.Applied,
		GoalAchieved: output.GoalAchieved,
	}
}

// ToForecastResponse converts a forecast.
func ToForecastResponse(f entity.GoalForecast) ForecastResponse {
	return ForecastResponse{
		GoalID:          f.GoalID.String(),
		Status:          string(f.Status),
		Remaining:       f.Remaining,
		MonthlyIncome:   f.MonthlyIncome,
		MonthsRemaining: f.MonthsRemaining,
		Message:         f.Message,
	}
}

// ToGoalForecastResponse converts a forecast output.
func ToGoalForecastResponse(output *goal.ForecastGoalOutput) GoalForecastResponse {
	return GoalForecastResponse{
		Goal:     ToGoalResponse(output.Goal),
		Forecast: ToForecastResponse(output.Forecast),
	}
}

// ToGoalOverviewResponse converts an overview output.
func ToGoalOverviewResponse(output *goal.GoalOverviewOutput) GoalOverviewResponse {
	response := GoalOverviewResponse{
		Goals:          make([]GoalForecastResponse, 0, len(output.Goals)),
		TrailingIncome: output.TrailingIncome,
		TotalTarget:    output.TotalTarget,
		TotalSaved:     output.TotalSaved,
	}
	for _, g := range output.Goals {
		response.Goals = append(response.Goals, GoalForecastResponse{
			Goal:     ToGoalResponse(g.Goal),
			Forecast: ToForecastResponse(g.Forecast),
		})
	}
	return response
}
