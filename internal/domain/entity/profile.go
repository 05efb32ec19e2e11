// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// Profile holds the gamification state of a user. XP never decreases and
// Level is always derived from XP.
type Profile struct {
	UserID        uuid.UUID
	FullName      string
	XP            int64
	Level         int
	CurrentStreak int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProfile creates a profile at zero xp.
func NewProfile(userID uuid.UUID, fullName string, strategy valueobject.LevelStrategy) *Profile {
	now := time.Now().UTC()

	return &Profile{
		UserID:    userID,
		FullName:  fullName,
		XP:        0,
		Level:     strategy.LevelFor(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyXP returns a copy of the profile with delta added and the level
// recomputed from the resulting xp. Non-positive deltas leave xp unchanged.
func (p Profile) ApplyXP(delta int64, strategy valueobject.LevelStrategy) (Profile, bool) {
	previous := strategy.LevelFor(p.XP)
	if delta > 0 {
		p.XP += delta
	}
	p.Level = strategy.LevelFor(p.XP)
	return p, p.Level > previous
}

// XPAward is one entry of the award ledger. SourceKey, when set, makes the
// award idempotent per user.
type XPAward struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    string
	XP        int64
	SourceKey *string
	CreatedAt time.Time
}

// NewXPAward creates a new XPAward entity.
func NewXPAward(userID uuid.UUID, action string, xp int64, sourceKey string) *XPAward {
	award := &XPAward{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		XP:        xp,
		CreatedAt: time.Now().UTC(),
	}
	if sourceKey != "" {
		award.SourceKey = &sourceKey
	}
	return award
}
