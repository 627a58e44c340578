// Package rules holds the per-level victory and defeat policies
package rules

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lixenwraith/lane-siege/engine"
)

// ErrUnknownPolicy is returned by ByName for an unregistered name
var ErrUnknownPolicy = errors.New("unknown policy")

// StandardPolicy loses once too many attackers reach the defended end,
// and wins when time runs out after every wave has started
type StandardPolicy struct{}

// Name returns "standard"
func (StandardPolicy) Name() string { return "standard" }

// CheckDefeat holds once reachedEndCount meets the level threshold
func (StandardPolicy) CheckDefeat(s engine.GameSnapshot) bool {
	return s.MaxReached > 0 && s.ReachedEndCount >= s.MaxReached
}

// CheckVictory holds once every wave has started without a defeat
func (p StandardPolicy) CheckVictory(s engine.GameSnapshot) bool {
	return s.CurrentWave >= s.TotalWaves && !p.CheckDefeat(s)
}

// SurvivalPolicy wins on the timer alone; defeat matches StandardPolicy
type SurvivalPolicy struct{}

// Name returns "survival"
func (SurvivalPolicy) Name() string { return "survival" }

// CheckDefeat holds once reachedEndCount meets the level threshold
func (SurvivalPolicy) CheckDefeat(s engine.GameSnapshot) bool {
	return StandardPolicy{}.CheckDefeat(s)
}

// CheckVictory always holds, the game loop only asks once time is out
func (SurvivalPolicy) CheckVictory(engine.GameSnapshot) bool { return true }

// Funcs adapts two predicates to engine.Policy, nil predicates never hold
type Funcs struct {
	Label   string
	Defeat  func(engine.GameSnapshot) bool
	Victory func(engine.GameSnapshot) bool
}

// Name returns the label
func (f Funcs) Name() string { return f.Label }

// CheckDefeat calls Defeat
func (f Funcs) CheckDefeat(s engine.GameSnapshot) bool {
	return f.Defeat != nil && f.Defeat(s)
}

// CheckVictory calls Victory
func (f Funcs) CheckVictory(s engine.GameSnapshot) bool {
	return f.Victory != nil && f.Victory(s)
}

var registry = map[string]engine.Policy{
	"standard": StandardPolicy{},
	"survival": SurvivalPolicy{},
}

// ByName resolves a policy name from level configuration, empty selects standard
func ByName(name string) (engine.Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StandardPolicy{}, nil
	}
	if p, ok := registry[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownPolicy, name, strings.Join(Names(), ", "))
}

// Names lists the registered policy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
