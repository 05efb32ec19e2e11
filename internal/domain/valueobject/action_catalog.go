// Package valueobject contains domain value objects for the finance coach.
package valueobject

import "strings"

// Known point-worthy actions.
const (
	ActionTip                = "tip"
	ActionConcept            = "concept"
	ActionQuiz               = "quiz"
	ActionPersonalizedAdvice = "personalized_advice"
	ActionMilestoneLesson    = "milestone_lesson"
	ActionMilestoneMastery   = "milestone_mastery"
	ActionTransactionLogged  = "transaction_logged"
)

// MaxActionXP bounds the xp a single action may grant.
const MaxActionXP int64 = 10000

// ActionCatalog maps an action name to the xp it grants.
type ActionCatalog map[string]int64

// DefaultActionCatalog returns the built-in xp values.
func DefaultActionCatalog() ActionCatalog {
	return ActionCatalog{
		ActionTip:                10,
		ActionConcept:            15,
		ActionQuiz:               20,
		ActionPersonalizedAdvice: 25,
		ActionMilestoneLesson:    75,
		ActionMilestoneMastery:   80,
		ActionTransactionLogged:  5,
	}
}

// XPFor returns the xp granted for action.
func (c ActionCatalog) XPFor(action string) (int64, bool) {
	xp, ok := c[strings.ToLower(strings.TrimSpace(action))]
	return xp, ok
}

// With returns a copy of the catalog with overrides applied.
func (c ActionCatalog) With(overrides map[string]int64) ActionCatalog {
	merged := make(ActionCatalog, len(c)+len(overrides))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return merged
}
