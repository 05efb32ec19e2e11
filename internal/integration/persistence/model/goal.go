// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// GoalModel represents the goals table in the database. Goals are never
// deleted; cancellation is a status change.
type GoalModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title         string          `gorm:"type:varchar(100);not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline      *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active';index"`
	AchievedAt    *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Deadline:      m.Deadline,
		Status:        entity.GoalStatus(m.Status),
		AchievedAt:    m.AchievedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Title:         goal.Title,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      goal.Deadline,
		Status:        string(goal.Status),
		AchievedAt:    goal.AchievedAt,
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
	}
}

// GoalContributionModel represents the goal_contributions table in the database.
type GoalContributionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GoalContributionModel.
func (GoalContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a GoalContributionModel to a domain GoalContribution entity.
func (m *GoalContributionModel) ToEntity() *entity.GoalContribution {
	return &entity.GoalContribution{
		ID:            m.ID,
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
	}
}

// GoalContributionFromEntity creates a GoalContributionModel from a domain GoalContribution entity.
func GoalContributionFromEntity(c *entity.GoalContribution) *GoalContributionModel {
	return &GoalContributionModel{
		ID:            c.ID,
		GoalID:        c.GoalID,
		UserID:        c.UserID,
		TransactionID: c.TransactionID,
		Amount:        c.Amount,
		CreatedAt:     c.CreatedAt,
	}
}
