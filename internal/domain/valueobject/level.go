// Package valueobject contains domain value objects for the finance coach.
package valueobject

import (
	"fmt"
	"strings"
)

// Level strategy names accepted by configuration.
const (
	LevelStrategyBanded  = "banded"
	LevelStrategyUniform = "uniform"
)

// LevelDefinition describes one tier as the half-open xp range [MinXP, MaxXP).
type LevelDefinition struct {
	Level int
	Name  string
	MinXP int64
	MaxXP int64
}

// bandedLevels is contiguous from 0. The last tier also covers every xp above its MaxXP.
var bandedLevels = []LevelDefinition{
	{Level: 1, Name: "Beginner", MinXP: 0, MaxXP: 100},
	{Level: 2, Name: "Learner", MinXP: 100, MaxXP: 250},
	{Level: 3, Name: "Saver", MinXP: 250, MaxXP: 450},
	{Level: 4, Name: "Budgeter", MinXP: 450, MaxXP: 700},
	{Level: 5, Name: "Finance Expert", MinXP: 700, MaxXP: 1000},
	{Level: 6, Name: "Smart Investor", MinXP: 1000, MaxXP: 1400},
	{Level: 7, Name: "Wealth Builder", MinXP: 1400, MaxXP: 1900},
	{Level: 8, Name: "Money Master", MinXP: 1900, MaxXP: 2600},
	{Level: 9, Name: "Financial Guru", MinXP: 2600, MaxXP: 3500},
	{Level: 10, Name: "Financial Legend", MinXP: 3500, MaxXP: 5000},
}

// LevelStrategy derives a level from cumulative xp. Implementations must be pure.
type LevelStrategy interface {
	Name() string
	LevelFor(xp int64) int
	Definition(level int) LevelDefinition
	// IsTop reports whether no higher level exists.
	IsTop(level int) bool
}

// BandedLevels maps xp onto the named ten-tier table.
type BandedLevels struct{}

// Name returns the configuration name of the strategy.
func (BandedLevels) Name() string { return LevelStrategyBanded }

// LevelFor returns the tier whose range contains xp.
func (BandedLevels) LevelFor(xp int64) int {
	level := bandedLevels[0].Level
	for _, def := range bandedLevels {
		if xp >= def.MinXP {
			level = def.Level
		}
	}
	return level
}

// Definition returns the tier for level, clamped to the table bounds.
func (BandedLevels) Definition(level int) LevelDefinition {
	if level < 1 {
		level = 1
	}
	if level > len(bandedLevels) {
		level = len(bandedLevels)
	}
	return bandedLevels[level-1]
}

// IsTop reports whether level is the last tier.
func (BandedLevels) IsTop(level int) bool {
	return level >= len(bandedLevels)
}

// BandedLevelTable returns a copy of the banded tier table.
func BandedLevelTable() []LevelDefinition {
	table := make([]LevelDefinition, len(bandedLevels))
	copy(table, bandedLevels)
	return table
}

// UniformLevels advances one level every Width xp, without an upper bound.
type UniformLevels struct {
	Width int64
}

// Name returns the configuration name of the strategy.
func (UniformLevels) Name() string { return LevelStrategyUniform }

// LevelFor returns floor(xp/Width)+1.
func (u UniformLevels) LevelFor(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/u.width()) + 1
}

// Definition returns the synthetic range of a uniform level.
func (u UniformLevels) Definition(level int) LevelDefinition {
	if level < 1 {
		level = 1
	}
	w := u.width()
	return LevelDefinition{
		Level: level,
		Name:  fmt.Sprintf("Level %d", level),
		MinXP: int64(level-1) * w,
		MaxXP: int64(level) * w,
	}
}

// IsTop is always false for the unbounded strategy.
func (UniformLevels) IsTop(int) bool { return false }

func (u UniformLevels) width() int64 {
	if u.Width <= 0 {
		return 100
	}
	return u.Width
}

// NewLevelStrategy resolves a strategy by its configuration name.
func NewLevelStrategy(name string) (LevelStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LevelStrategyBanded:
		return BandedLevels{}, nil
	case LevelStrategyUniform:
		return UniformLevels{Width: 100}, nil
	default:
		return nil, fmt.Errorf("unknown level strategy %q", name)
	}
}

// LevelProgress summarizes where xp sits inside its level.
type LevelProgress struct {
	Level       int
	Name        string
	MinXP       int64
	NextLevelXP *int64
	XPToNext    int64
	Fraction    float64
}

// ProgressFor computes the progress summary of xp under strategy.
func ProgressFor(strategy LevelStrategy, xp int64) LevelProgress {
	level := strategy.LevelFor(xp)
	def := strategy.Definition(level)

	progress := LevelProgress{
		Level: level,
		Name:  def.Name,
		MinXP: def.MinXP,
	}

	span := def.MaxXP - def.MinXP
	if span > 0 {
		progress.Fraction = float64(xp-def.MinXP) / float64(span)
		if progress.Fraction > 1 {
			progress.Fraction = 1
		}
	}

	if strategy.IsTop(level) {
		return progress
	}

	next := def.MaxXP
	progress.NextLevelXP = &next
	progress.XPToNext = next - xp
	return progress
}
