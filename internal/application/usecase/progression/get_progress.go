package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// GetProgressInput represents the input for reading progression state.
type GetProgressInput struct {
	UserID uuid.UUID
}

// GetProgressUseCase reports xp, level and distance to the next level.
type GetProgressUseCase struct {
	profileRepo adapter.ProfileRepository
	strategy    valueobject.LevelStrategy
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(profileRepo adapter.ProfileRepository, strategy valueobject.LevelStrategy) *GetProgressUseCase {
	return &GetProgressUseCase{
		profileRepo: profileRepo,
		strategy:    strategy,
	}
}

// Execute reads the profile. The level is recomputed from xp.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*ProfileOutput, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, profileNotFound(input.UserID)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile.Level = uc.strategy.LevelFor(profile.XP)
	return NewProfileOutput(profile, uc.strategy), nil
}
