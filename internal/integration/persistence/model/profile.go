// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// ProfileModel represents the profiles table in the database.
type ProfileModel struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName      string    `gorm:"type:varchar(100)"`
	XP            int64     `gorm:"column:xp;not null;default:0"`
	Level         int       `gorm:"not null;default:1"`
	CurrentStreak int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	return &entity.Profile{
		UserID:        m.UserID,
		FullName:      m.FullName,
		XP:            m.XP,
		Level:         m.Level,
		CurrentStreak: m.CurrentStreak,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileFromEntity(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:        profile.UserID,
		FullName:      profile.FullName,
		XP:            profile.XP,
		Level:         profile.Level,
		CurrentStreak: profile.CurrentStreak,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
}

// XPAwardModel represents the xp_awards table in the database.
type XPAwardModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_xp_awards_user_source"`
	Action    string    `gorm:"type:varchar(50);not null"`
	XP        int64     `gorm:"column:xp;not null"`
	SourceKey *string   `gorm:"type:varchar(100);uniqueIndex:idx_xp_awards_user_source"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the XPAwardModel.
func (XPAwardModel) TableName() string {
	return "xp_awards"
}

// XPAwardFromEntity creates an XPAwardModel from a domain XPAward entity.
func XPAwardFromEntity(award *entity.XPAward) *XPAwardModel {
	return &XPAwardModel{
		ID:        award.ID,
		UserID:    award.UserID,
		Action:    award.Action,
		XP:        award.XP,
		SourceKey: award.SourceKey,
		CreatedAt: award.CreatedAt,
	}
}
