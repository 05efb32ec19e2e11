// Package progression contains the xp and level use cases. It is the only
// writer of profile xp and level.
package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// ProfileOutput represents a profile with its level progress.
type ProfileOutput struct {
	UserID        uuid.UUID
	FullName      string
	XP            int64
	Level         int
	LevelName     string
	CurrentStreak int
	Progress      valueobject.LevelProgress
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProfileOutput maps a profile to its output form under a level strategy.
func NewProfileOutput(profile *entity.Profile, strategy valueobject.LevelStrategy) *ProfileOutput {
	progress := valueobject.ProgressFor(strategy, profile.XP)
	return &ProfileOutput{
		UserID:        profile.UserID,
		FullName:      profile.FullName,
		XP:            profile.XP,
		Level:         profile.Level,
		LevelName:     progress.Name,
		CurrentStreak: profile.CurrentStreak,
		Progress:      progress,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
}
