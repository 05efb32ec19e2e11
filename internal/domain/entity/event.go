// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies an advisory signal emitted by the core.
type EventKind string

const (
	EventKindGoalAchieved EventKind = "goal_achieved"
	EventKindLevelUp      EventKind = "level_up"
)

// Event is an advisory notification. Delivery is best-effort.
type Event struct {
	ID         uuid.UUID
	Kind       EventKind
	UserID     uuid.UUID
	Payload    map[string]any
	OccurredAt time.Time
}

// NewGoalAchievedEvent builds the signal emitted when a goal reaches its target.
func NewGoalAchievedEvent(goal *Goal) Event {
	return Event{
		ID:     uuid.New(),
		Kind:   EventKindGoalAchieved,
		UserID: goal.UserID,
		Payload: map[string]any{
			"goal_id":        goal.ID.String(),
			"title":          goal.Title,
			"target_amount":  goal.TargetAmount.String(),
			"current_amount": goal.CurrentAmount.String(),
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewLevelUpEvent builds the signal emitted when an award crosses a level boundary.
func NewLevelUpEvent(profile *Profile, previousLevel int, levelName string) Event {
	return Event{
		ID:     uuid.New(),
		Kind:   EventKindLevelUp,
		UserID: profile.UserID,
		Payload: map[string]any{
			"previous_level": previousLevel,
			"level":          profile.Level,
			"level_name":     levelName,
			"xp":             profile.XP,
		},
		OccurredAt: time.Now().UTC(),
	}
}
