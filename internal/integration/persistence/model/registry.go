// Package model defines database models for persistence layer.
package model

// Registry returns every persisted model keyed by table name.
func Registry() map[string]any {
	return map[string]any{
		"categories":         &CategoryModel{},
		"transactions":       &TransactionModel{},
		"goals":              &GoalModel{},
		"goal_contributions": &GoalContributionModel{},
		"profiles":           &ProfileModel{},
		"xp_awards":          &XPAwardModel{},
	}
}

// All returns every persisted model for AutoMigrate.
func All() []any {
	return []any{
		&CategoryModel{},
		&TransactionModel{},
		&GoalModel{},
		&GoalContributionModel{},
		&ProfileModel{},
		&XPAwardModel{},
	}
}
