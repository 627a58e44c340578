package rules

import (
	"errors"
	"testing"

	"github.com/lixenwraith/lane-siege/engine"
)

func TestStandardPolicy(t *testing.T) {
	p := StandardPolicy{}
	tests := []struct {
		name    string
		snap    engine.GameSnapshot
		defeat  bool
		victory bool
	}{
		{"fresh", engine.GameSnapshot{TotalWaves: 3, MaxReached: 2}, false, false},
		{"waves done", engine.GameSnapshot{CurrentWave: 3, TotalWaves: 3, MaxReached: 2}, false, true},
		{"overrun", engine.GameSnapshot{CurrentWave: 3, TotalWaves: 3, ReachedEndCount: 2, MaxReached: 2}, true, false},
		{"no threshold", engine.GameSnapshot{ReachedEndCount: 9}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CheckDefeat(tt.snap); got != tt.defeat {
				t.Errorf("CheckDefeat = %v, want %v", got, tt.defeat)
			}
			if got := p.CheckVictory(tt.snap); got != tt.victory {
				t.Errorf("CheckVictory = %v, want %v", got, tt.victory)
			}
		})
	}
}

func TestSurvivalPolicy(t *testing.T) {
	p := SurvivalPolicy{}
	if !p.CheckVictory(engine.GameSnapshot{TotalWaves: 5}) {
		t.Error("Expected survival victory regardless of waves")
	}
	if !p.CheckDefeat(engine.GameSnapshot{ReachedEndCount: 1, MaxReached: 1}) {
		t.Error("Expected survival defeat on threshold")
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{"": "standard", "Survival": "survival", " standard ": "standard"} {
		p, err := ByName(name)
		if err != nil || p.Name() != want {
			t.Errorf("ByName(%q) = %v, %v; want %s", name, p, err, want)
		}
	}
	if _, err := ByName("sudden-death"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("Expected ErrUnknownPolicy, got %v", err)
	}
}

func TestFuncsNilPredicates(t *testing.T) {
	f := Funcs{Label: "never"}
	if f.CheckDefeat(engine.GameSnapshot{}) || f.CheckVictory(engine.GameSnapshot{}) {
		t.Error("Expected nil predicates to never hold")
	}
}
