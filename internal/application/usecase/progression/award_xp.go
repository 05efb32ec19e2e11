package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// AwardXPInput represents an xp award request. The amount always comes from
// the action catalog.
type AwardXPInput struct {
	UserID    uuid.UUID
	Action    string
	SourceKey string // Optional; repeated keys are applied once
}

// AwardXPOutput represents the outcome of an award.
type AwardXPOutput struct {
	Profile       *ProfileOutput
	XPAwarded     int64
	Applied       bool
	LeveledUp     bool
	PreviousLevel int
}

// AwardXPUseCase converts actions into xp and advances the level.
type AwardXPUseCase struct {
	profileRepo adapter.ProfileRepository
	strategy    valueobject.LevelStrategy
	catalog     valueobject.ActionCatalog
	publisher   adapter.EventPublisher
}

// NewAwardXPUseCase creates a new AwardXPUseCase instance.
func NewAwardXPUseCase(
	profileRepo adapter.ProfileRepository,
	strategy valueobject.LevelStrategy,
	catalog valueobject.ActionCatalog,
	publisher adapter.EventPublisher,
) *AwardXPUseCase {
	return &AwardXPUseCase{
		profileRepo: profileRepo,
		strategy:    strategy,
		catalog:     catalog,
		publisher:   publisher,
	}
}

// Execute performs the award.
func (uc *AwardXPUseCase) Execute(ctx context.Context, input AwardXPInput) (*AwardXPOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerror.NewProgressionError(
			domainerror.ErrCodeProgressionMissingUser,
			"user id is required",
			domainerror.ErrMissingProfileUser,
		)
	}

	action, delta, err := uc.resolveDelta(input)
	if err != nil {
		return nil, err
	}

	// Zero awards leave the profile untouched
	if delta == 0 {
		profile, err := uc.findProfile(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		return &AwardXPOutput{
			Profile:       NewProfileOutput(profile, uc.strategy),
			PreviousLevel: profile.Level,
		}, nil
	}

	result, err := uc.profileRepo.AddXP(ctx, entity.NewXPAward(input.UserID, action, delta, input.SourceKey), uc.strategy)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, profileNotFound(input.UserID)
		}
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}

	output := &AwardXPOutput{
		Profile:       NewProfileOutput(result.Profile, uc.strategy),
		Applied:       result.Applied,
		PreviousLevel: result.PreviousLevel,
	}
	if !result.Applied {
		output.PreviousLevel = result.Profile.Level
		return output, nil
	}

	before := *result.Profile
	before.XP = result.PreviousXP
	_, output.LeveledUp = before.ApplyXP(delta, uc.strategy)
	output.XPAwarded = delta

	slog.Debug("XP awarded",
		"userID", input.UserID,
		"action", action,
		"xp", delta,
		"totalXP", result.Profile.XP,
		"level", result.Profile.Level,
	)

	if output.LeveledUp {
		event := entity.NewLevelUpEvent(result.Profile, result.PreviousLevel, output.Profile.LevelName)
		if err := publish(ctx, uc.publisher, event); err != nil {
			slog.Warn("Failed to publish level up event",
				"userID", input.UserID,
				"level", result.Profile.Level,
				"error", err,
			)
		}
	}
	return output, nil
}

// AwardAction grants the catalogued xp of action, keyed by sourceKey.
func (uc *AwardXPUseCase) AwardAction(ctx context.Context, userID uuid.UUID, action, sourceKey string) error {
	_, err := uc.Execute(ctx, AwardXPInput{UserID: userID, Action: action, SourceKey: sourceKey})
	return err
}

func (uc *AwardXPUseCase) resolveDelta(input AwardXPInput) (string, int64, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))

	xp, ok := uc.catalog.XPFor(action)
	if !ok {
		return "", 0, domainerror.NewProgressionError(
			domainerror.ErrCodeUnknownAction,
			fmt.Sprintf("unknown action %q", input.Action),
			domainerror.ErrUnknownAction,
		)
	}
	if xp < 0 || xp > valueobject.MaxActionXP {
		return "", 0, domainerror.NewProgressionError(
			domainerror.ErrCodeXPOutOfRange,
			fmt.Sprintf("action %q grants %d xp, want 0..%d", action, xp, valueobject.MaxActionXP),
			domainerror.ErrXPOutOfRange,
		)
	}
	return action, xp, nil
}

func (uc *AwardXPUseCase) findProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, profileNotFound(userID)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func profileNotFound(userID uuid.UUID) error {
	return domainerror.NewProgressionError(
		domainerror.ErrCodeProfileNotFound,
		fmt.Sprintf("no profile for user %s", userID),
		domainerror.ErrProfileNotFound,
	)
}

func publish(ctx context.Context, publisher adapter.EventPublisher, event entity.Event) error {
	if publisher == nil {
		return nil
	}
	return publisher.Publish(ctx, event)
}
