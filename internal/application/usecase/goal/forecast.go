package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// IncomeWindowDays is the trailing window used as monthly income velocity.
const IncomeWindowDays = 30

const (
	achievedMessage      = "Goal reached! You have saved the full target."
	encouragementMessage = "Log your income to see when you will reach this goal."
)

// Forecast projects the months left to complete goal at the given trailing
// 30-day income. The projection is linear and ignores expenses.
func Forecast(goal *entity.Goal, trailingIncome decimal.Decimal) entity.GoalForecast {
	forecast := entity.GoalForecast{
		GoalID:        goal.ID,
		Remaining:     goal.Remaining(),
		MonthlyIncome: trailingIncome,
	}

	if !forecast.Remaining.IsPositive() {
		forecast.Status = entity.ForecastStatusAchieved
		forecast.Message = achievedMessage
		return forecast
	}

	if !trailingIncome.IsPositive() {
		forecast.Status = entity.ForecastStatusInsufficientIncome
		forecast.Message = encouragementMessage
		return forecast
	}

	months := int(forecast.Remaining.Div(trailingIncome).Ceil().IntPart())
	forecast.Status = entity.ForecastStatusProjected
	forecast.MonthsRemaining = &months
	if months == 1 {
		forecast.Message = "At your current income you could reach this goal within a month."
	} else {
		forecast.Message = fmt.Sprintf("At your current income you could reach this goal in %d months.", months)
	}
	return forecast
}

// IncomeWindow returns the last IncomeWindowDays calendar days ending today.
// Both bounds are inclusive, so the start is today-29 for a 30-day window.
func IncomeWindow(now time.Time) (time.Time, time.Time) {
	today := entity.CalendarDate(now)
	return today.AddDate(0, 0, -(IncomeWindowDays - 1)), today
}

// trailingIncome sums the user's whole-account income inside the window.
func trailingIncome(ctx context.Context, repo adapter.TransactionRepository, clock adapter.Clock, userID uuid.UUID) (decimal.Decimal, error) {
	start, end := IncomeWindow(clock.Now())
	income, _, err := repo.SumByType(ctx, userID, &start, &end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum trailing income: %w", err)
	}
	return income, nil
}
