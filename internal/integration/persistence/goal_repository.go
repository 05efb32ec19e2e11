// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return findGoal(r.db.WithContext(ctx), id)
}

// FindByUserID retrieves the goals of a user, optionally filtered by status.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var goalModels []model.GoalModel
	result := query.Order("created_at DESC").Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// UpdateStatus moves a goal to a new status.
func (r *goalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.GoalStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// Contribute records the contribution and increments current_amount in one
// database transaction. The increment is evaluated by the database so
// concurrent contributions never overwrite each other.
func (r *goalRepository) Contribute(ctx context.Context, contribution *entity.GoalContribution) (*adapter.ContributionResult, error) {
	var out adapter.ContributionResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Record the contribution; a repeated transaction id is a no-op
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(model.GoalContributionFromEntity(contribution))
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			goal, err := findGoal(tx, contribution.GoalID)
			if err != nil {
				return err
			}
			out.Goal = goal
			return nil
		}

		now := time.Now().UTC()
		update := tx.Model(&model.GoalModel{}).
			Where("id = ? AND status = ?", contribution.GoalID, string(entity.GoalStatusActive)).
			Updates(map[string]any{
				"current_amount": gorm.Expr("current_amount + ?", contribution.Amount),
				"updated_at":     now,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			// Distinguish a missing goal from a closed one
			if _, err := findGoal(tx, contribution.GoalID); err != nil {
				return err
			}
			return domainerror.ErrGoalNotActive
		}

		goal, err := findGoal(tx, contribution.GoalID)
		if err != nil {
			return err
		}

		if goal.Reached() {
			achieve := tx.Model(&model.GoalModel{}).
				Where("id = ? AND status = ?", goal.ID, string(entity.GoalStatusActive)).
				Updates(map[string]any{
					"status":      string(entity.GoalStatusAchieved),
					"achieved_at": now,
				})
			if achieve.Error != nil {
				return achieve.Error
			}
			if achieve.RowsAffected > 0 {
				goal.Status = entity.GoalStatusAchieved
				goal.AchievedAt = &now
				out.JustAchieved = true
			}
		}

		out.Goal = goal
		out.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// FindContributions lists the contributions of a goal, newest first.
func (r *goalRepository) FindContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error) {
	var contributionModels []model.GoalContributionModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&contributionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	contributions := make([]*entity.GoalContribution, len(contributionModels))
	for i := range contributionModels {
		contributions[i] = contributionModels[i].ToEntity()
	}
	return contributions, nil
}

func findGoal(db *gorm.DB, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := db.Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}
