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
	"github.com/finance-tracker/coach/internal/domain/valueobject"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Create inserts a profile. Returns false when one already exists for the user.
func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.ProfileFromEntity(profile))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByUserID retrieves the profile of a user.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return findProfile(r.db.WithContext(ctx), userID)
}

// AddXP records the award and increments xp server-side in one database
// transaction. The stored level is always recomputed from the stored xp.
func (r *profileRepository) AddXP(ctx context.Context, award *entity.XPAward, strategy valueobject.LevelStrategy) (*adapter.AddXPResult, error) {
	var out adapter.AddXPResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Record the award; a repeated source key is a no-op
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(model.XPAwardFromEntity(award))
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			profile, err := findProfile(tx, award.UserID)
			if err != nil {
				return err
			}
			out.Profile = profile
			out.PreviousXP = profile.XP
			out.PreviousLevel = profile.Level
			return nil
		}

		update := tx.Model(&model.ProfileModel{}).
			Where("user_id = ?", award.UserID).
			Updates(map[string]any{
				"xp":         gorm.Expr("xp + ?", award.XP),
				"updated_at": time.Now().UTC(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return domainerror.ErrProfileNotFound
		}

		profile, err := findProfile(tx, award.UserID)
		if err != nil {
			return err
		}

		level := strategy.LevelFor(profile.XP)
		if level != profile.Level {
			if err := tx.Model(&model.ProfileModel{}).
				Where("user_id = ?", award.UserID).
				Update("level", level).Error; err != nil {
				return err
			}
		}

		out.PreviousXP = profile.XP - award.XP
		out.PreviousLevel = strategy.LevelFor(out.PreviousXP)
		profile.Level = level
		out.Profile = profile
		out.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func findProfile(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	result := db.Where("user_id = ?", userID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}
