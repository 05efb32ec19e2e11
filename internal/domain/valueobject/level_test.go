package valueobject

import "testing"

func TestBandedLevels_LevelFor(t *testing.T) {
	tests := []struct {
		name      string
		xp        int64
		wantLevel int
		wantName  string
	}{
		{name: "zero xp", xp: 0, wantLevel: 1, wantName: "Beginner"},
		{name: "just below tier 2", xp: 99, wantLevel: 1, wantName: "Beginner"},
		{name: "tier 2 lower bound", xp: 100, wantLevel: 2, wantName: "Learner"},
		{name: "stored xp 230", xp: 230, wantLevel: 2, wantName: "Learner"},
		{name: "tier 3 lower bound", xp: 250, wantLevel: 3, wantName: "Saver"},
		{name: "xp 900", xp: 900, wantLevel: 5, wantName: "Finance Expert"},
		{name: "tier 10 lower bound", xp: 3500, wantLevel: 10, wantName: "Financial Legend"},
		{name: "beyond the table", xp: 12000, wantLevel: 10, wantName: "Financial Legend"},
	}

	strategy := BandedLevels{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := strategy.LevelFor(tt.xp)
			if level != tt.wantLevel {
				t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, level, tt.wantLevel)
			}
			if name := strategy.Definition(level).Name; name != tt.wantName {
				t.Errorf("Definition(%d).Name = %q, want %q", level, name, tt.wantName)
			}
		})
	}
}

func TestBandedLevelTable_IsContiguous(t *testing.T) {
	table := BandedLevelTable()
	if len(table) != 10 {
		t.Fatalf("expected 10 tiers, got %d", len(table))
	}
	if table[0].MinXP != 0 {
		t.Errorf("first tier must start at 0, got %d", table[0].MinXP)
	}
	for i := 1; i < len(table); i++ {
		if table[i].MinXP != table[i-1].MaxXP {
			t.Errorf("tier %d starts at %d, previous ends at %d", table[i].Level, table[i].MinXP, table[i-1].MaxXP)
		}
		if table[i].Level != table[i-1].Level+1 {
			t.Errorf("tier levels must be sequential, got %d after %d", table[i].Level, table[i-1].Level)
		}
	}
}

func TestUniformLevels_LevelFor(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 900, want: 10},
		{xp: 12345, want: 124},
	}

	strategy := UniformLevels{Width: 100}
	for _, tt := range tests {
		if got := strategy.LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestNewLevelStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to banded", input: "", want: LevelStrategyBanded},
		{name: "banded", input: "banded", want: LevelStrategyBanded},
		{name: "uniform mixed case", input: " Uniform ", want: LevelStrategyUniform},
		{name: "unknown", input: "fibonacci", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewLevelStrategy(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strategy.Name() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, strategy.Name())
			}
		})
	}
}

func TestProgressFor(t *testing.T) {
	t.Run("mid tier", func(t *testing.T) {
		p := ProgressFor(BandedLevels{}, 175)
		if p.Level != 2 || p.Name != "Learner" {
			t.Fatalf("expected Learner level 2, got %s level %d", p.Name, p.Level)
		}
		if p.NextLevelXP == nil || *p.NextLevelXP != 250 {
			t.Fatalf("expected next level at 250, got %v", p.NextLevelXP)
		}
		if p.XPToNext != 75 {
			t.Errorf("expected 75 xp to next, got %d", p.XPToNext)
		}
		if p.Fraction != 0.5 {
			t.Errorf("expected fraction 0.5, got %v", p.Fraction)
		}
	})

	t.Run("top tier has no next level", func(t *testing.T) {
		p := ProgressFor(BandedLevels{}, 9000)
		if p.Level != 10 {
			t.Fatalf("expected level 10, got %d", p.Level)
		}
		if p.NextLevelXP != nil {
			t.Errorf("expected no next level, got %d", *p.NextLevelXP)
		}
		if p.Fraction != 1 {
			t.Errorf("expected fraction capped at 1, got %v", p.Fraction)
		}
	})

	t.Run("uniform", func(t *testing.T) {
		p := ProgressFor(UniformLevels{Width: 100}, 230)
		if p.Level != 3 || p.XPToNext != 70 {
			t.Errorf("expected level 3 with 70 to next, got level %d with %d", p.Level, p.XPToNext)
		}
	})
}

func TestActionCatalog(t *testing.T) {
	catalog := DefaultActionCatalog().With(map[string]int64{"Quiz": 30, "streak_bonus": 5})

	if xp, ok := catalog.XPFor("quiz"); !ok || xp != 30 {
		t.Errorf("expected overridden quiz xp 30, got %d (%v)", xp, ok)
	}
	if xp, ok := catalog.XPFor(" CONCEPT "); !ok || xp != 15 {
		t.Errorf("expected concept xp 15, got %d (%v)", xp, ok)
	}
	if _, ok := catalog.XPFor("unknown"); ok {
		t.Error("expected unknown action to be missing")
	}
	if xp, _ := DefaultActionCatalog().XPFor("quiz"); xp != 20 {
		t.Errorf("With must not mutate the receiver, got quiz xp %d", xp)
	}
}
