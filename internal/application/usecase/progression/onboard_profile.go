package progression

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// MaxFullNameLength is the maximum allowed length for profile names.
const MaxFullNameLength = 100

// OnboardProfileInput represents the input for profile onboarding.
type OnboardProfileInput struct {
	UserID   uuid.UUID
	FullName string
}

// OnboardProfileOutput represents the output of profile onboarding.
type OnboardProfileOutput struct {
	Profile *ProfileOutput
	// Created is false when the profile already existed.
	Created bool
}

// OnboardProfileUseCase creates a profile at zero xp. Repeated calls return
// the existing profile.
type OnboardProfileUseCase struct {
	profileRepo adapter.ProfileRepository
	strategy    valueobject.LevelStrategy
}

// NewOnboardProfileUseCase creates a new OnboardProfileUseCase instance.
func NewOnboardProfileUseCase(profileRepo adapter.ProfileRepository, strategy valueobject.LevelStrategy) *OnboardProfileUseCase {
	return &OnboardProfileUseCase{
		profileRepo: profileRepo,
		strategy:    strategy,
	}
}

// Execute performs the onboarding.
func (uc *OnboardProfileUseCase) Execute(ctx context.Context, input OnboardProfileInput) (*OnboardProfileOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerror.NewProgressionError(
			domainerror.ErrCodeProgressionMissingUser,
			"user id is required",
			domainerror.ErrMissingProfileUser,
		)
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" || len([]rune(fullName)) > MaxFullNameLength {
		return nil, domainerror.NewProgressionError(
			domainerror.ErrCodeInvalidFullName,
			fmt.Sprintf("full name is required and must not exceed %d characters", MaxFullNameLength),
			domainerror.ErrInvalidFullName,
		)
	}

	created, err := uc.profileRepo.Create(ctx, entity.NewProfile(input.UserID, fullName, uc.strategy))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return &OnboardProfileOutput{
		Profile: NewProfileOutput(profile, uc.strategy),
		Created: created,
	}, nil
}
