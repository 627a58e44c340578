package config

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/rules"
)

// ErrNoLevel is returned when a file has no [level] table
var ErrNoLevel = errors.New("no [level] table")

//go:embed levels/*.toml
var builtin embed.FS

// Loaded is a built level together with the policy its file selected
type Loaded struct {
	Level  *level.Level
	Policy engine.Policy
}

// Parse decodes a level file; unknown keys are logged and ignored
func Parse(data []byte, log *slog.Logger) (*File, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if !md.IsDefined("level") {
		return nil, ErrNoLevel
	}
	for _, key := range md.Undecoded() {
		log.Warn("ignoring unknown level key", "key", key.String())
	}
	return &f, nil
}

// LoadFile reads, decodes and builds the level at path
func LoadFile(path string, log *slog.Logger) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Load(data, log)
}

// Builtin loads one of the levels shipped with the binary by name
func Builtin(name string, log *slog.Logger) (*Loaded, error) {
	data, err := builtin.ReadFile("levels/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("builtin level %q: %w", name, err)
	}
	return Load(data, log)
}

// Load decodes and builds a level from TOML bytes
func Load(data []byte, log *slog.Logger) (*Loaded, error) {
	f, err := Parse(data, log)
	if err != nil {
		return nil, err
	}
	return f.Build(log)
}

// Build converts the raw records into a validated level
// Bad actor, wave and placement rows are skipped with a warning; an unknown policy fails
func (f *File) Build(log *slog.Logger) (*Loaded, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	policy, err := rules.ByName(f.Level.Policy)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", f.Level.Name, err)
	}

	actors := make([]level.ActorStats, 0, len(f.Actors))
	for _, a := range f.Actors {
		team, ok := parseTeam(a.Team)
		if !ok {
			log.Warn("skipping actor", "actor", a.Type, "team", a.Team, "reason", "unknown team")
			continue
		}
		actors = append(actors, level.ActorStats{
			Type:            a.Type,
			Team:            team,
			Speed:           a.Speed,
			Damage:          a.Damage,
			AttackInterval:  a.AttackInterval.Std(),
			Range:           a.Range,
			Health:          a.Health,
			AssetPath:       a.Asset,
			Ranged:          a.Ranged,
			ProjectileSpeed: a.ProjectileSpeed,
			ProjectileAsset: a.ProjectileAsset,
		})
	}

	waves := make([]level.WaveEntry, 0, len(f.Waves))
	for _, w := range f.Waves {
		waves = append(waves, level.WaveEntry{
			WaveNumber: w.Wave,
			ActorType:  w.Actor,
			Count:      w.Count,
			SpawnDelay: w.SpawnDelay.Std(),
		})
	}

	placements := make([]level.Placement, 0, len(f.Placements))
	for _, p := range f.Placements {
		placements = append(placements, level.Placement{ActorType: p.Actor, Lane: p.Lane, Column: p.Column})
	}

	lvl, err := level.New(level.Params{
		Name:         f.Level.Name,
		Rows:         f.Level.Rows,
		Columns:      f.Level.Columns,
		CellSize:     f.Level.CellSize,
		Duration:     f.Level.Duration.Std(),
		TotalWaves:   f.Level.TotalWaves,
		WaveInterval: f.Level.WaveInterval.Std(),
		MaxReached:   f.Level.MaxReached,
	}, actors, waves, placements, log)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", f.Level.Name, err)
	}
	return &Loaded{Level: lvl, Policy: policy}, nil
}

func parseTeam(s string) (component.Team, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attacker":
		return component.TeamAttacker, true
	case "defender":
		return component.TeamDefender, true
	}
	return component.TeamNone, false
}
