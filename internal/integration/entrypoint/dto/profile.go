package dto

import (
	"time"

	"github.com/finance-tracker/coach/internal/application/usecase/progression"
)

// OnboardProfileRequest represents the request body for creating a profile.
type OnboardProfileRequest struct {
	FullName string `json:"full_name"`
}

// AwardRequest represents the request body for an xp award. The amount is
// decided by the action.
type AwardRequest struct {
	Action    string `json:"action" binding:"required"`
	SourceKey string `json:"source_key,omitempty"`
}

// ProgressResponse represents the progress toward the next level.
type ProgressResponse struct {
	Level       int     `json:"level"`
	Name        string  `json:"name"`
	MinXP       int64   `json:"min_xp"`
	NextLevelXP *int64  `json:"next_level_xp"`
	XPToNext    int64   `json:"xp_to_next"`
	Fraction    float64 `json:"fraction"`
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	UserID        string           `json:"user_id"`
	FullName      string           `json:"full_name"`
	XP            int64            `json:"xp"`
	Level         int              `json:"level"`
	LevelName     string           `json:"level_name"`
	CurrentStreak int              `json:"current_streak"`
	Progress      ProgressResponse `json:"progress"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// AwardResponse represents the result of an xp award.
type AwardResponse struct {
	Profile       ProfileResponse `json:"profile"`
	XPAwarded     int64           `json:"xp_awarded"`
	Applied       bool            `json:"applied"`
	LeveledUp     bool            `json:"leveled_up"`
	PreviousLevel int             `json:"previous_level"`
}

// ToProfileResponse converts a ProfileOutput to a ProfileResponse DTO.
func ToProfileResponse(p *progression.ProfileOutput) ProfileResponse {
	return ProfileResponse{
		UserID:        p.UserID.String(),
		FullName:      p.FullName,
		XP:            p.XP,
		Level:         p.Level,
		LevelName:     p.LevelName,
		CurrentStreak: p.CurrentStreak,
		Progress: ProgressResponse{
			Level:       p.Progress.Level,
			Name:        p.Progress.Name,
			MinXP:       p.Progress.MinXP,
			NextLevelXP: p.Progress.NextLevelXP,
			XPToNext:    p.Progress.XPToNext,
			Fraction:    p.Progress.Fraction,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToAwardResponse converts an award output.
func ToAwardResponse(output *progression.AwardXPOutput) AwardResponse {
	return AwardResponse{
		Profile:       ToProfileResponse(output.Profile),
		XPAwarded:     output.XPAwarded,
		Applied:       output.Applied,
		LeveledUp:     output.LeveledUp,
		PreviousLevel: output.PreviousLevel,
	}
}
