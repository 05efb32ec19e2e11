// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// AddXPResult is the outcome of an atomic xp award.
type AddXPResult struct {
	Profile       *entity.Profile
	PreviousXP    int64
	PreviousLevel int
	// Applied is false when the award's source key was already recorded.
	Applied bool
}

// ProfileRepository defines the interface for profile persistence. It is the
// only writer of xp and level.
type ProfileRepository interface {
	// Create inserts a profile. Returns false when one already exists for the user.
	Create(ctx context.Context, profile *entity.Profile) (bool, error)

	// FindByUserID retrieves the profile of a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// AddXP records the award and increments xp server-side in one database
	// transaction, then stores the level derived from the new xp.
	AddXP(ctx context.Context, award *entity.XPAward, strategy valueobject.LevelStrategy) (*AddXPResult, error)
}
