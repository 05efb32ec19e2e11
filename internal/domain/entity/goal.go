// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus represents the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusAchieved  GoalStatus = "achieved"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s GoalStatus) IsValid() bool {
	return s == GoalStatusActive || s == GoalStatusAchieved || s == GoalStatusCancelled
}

// Goal represents a savings goal. CurrentAmount is the sum of its contributions
// and only grows through GoalContribution records.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	Status        GoalStatus
	AchievedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new active Goal entity with no contributions.
func NewGoal(userID uuid.UUID, title string, targetAmount decimal.Decimal, deadline *time.Time) *Goal {
	now := time.Now().UTC()

	if deadline != nil {
		d := CalendarDate(*deadline)
		deadline = &d
	}

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		Status:        GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsActive reports whether the goal still accepts contributions.
func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}

// Reached reports whether the accumulated amount covers the target.
func (g *Goal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining returns the amount still missing, clamped to zero.
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Progress returns current/target as a fraction capped at 1.
func (g *Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p := g.CurrentAmount.Div(g.TargetAmount).InexactFloat64()
	if p > 1 {
		return 1
	}
	return p
}

// GoalContribution is one increment applied to a goal. A contribution tied to a
// transaction is applied at most once per transaction.
type GoalContribution struct {
	ID            uuid.UUID
	GoalID        uuid.UUID
	UserID        uuid.UUID
	TransactionID *uuid.UUID
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// NewGoalContribution creates a new GoalContribution entity.
func NewGoalContribution(goalID, userID uuid.UUID, amount decimal.Decimal, transactionID *uuid.UUID) *GoalContribution {
	return &GoalContribution{
		ID:            uuid.New(),
		GoalID:        goalID,
		UserID:        userID,
		TransactionID: transactionID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
}

// ForecastStatus classifies a goal forecast.
type ForecastStatus string

const (
	ForecastStatusAchieved           ForecastStatus = "achieved"
	ForecastStatusProjected          ForecastStatus = "projected"
	ForecastStatusInsufficientIncome ForecastStatus = "insufficient_income"
)

// GoalForecast is a first-order projection of the months left to reach a goal.
type GoalForecast struct {
	GoalID          uuid.UUID
	Status          ForecastStatus
	Remaining       decimal.Decimal
	MonthlyIncome   decimal.Decimal
	MonthsRemaining *int
	Message         string
}
