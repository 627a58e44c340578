// Package config decodes TOML level files into typed level records
package config

import (
	"fmt"
	"time"
)

// File is the raw decoded form of a level file
type File struct {
	Level      LevelConfig       `toml:"level"`
	Actors     []ActorConfig     `toml:"actors"`
	Waves      []WaveConfig      `toml:"waves"`
	Placements []PlacementConfig `toml:"placements"`
}

// LevelConfig holds board, pacing and policy settings
// Zero values fall back to the level package defaults
type LevelConfig struct {
	Name         string   `toml:"name"`
	Rows         int      `toml:"rows"`
	Columns      int      `toml:"columns"`
	CellSize     float64  `toml:"cell_size"`
	Duration     Duration `toml:"duration"`
	TotalWaves   int      `toml:"total_waves,omitempty"`
	WaveInterval Duration `toml:"wave_interval"`
	MaxReached   int      `toml:"max_reached"`
	Policy       string   `toml:"policy,omitempty"`
}

// ActorConfig is one row of the actor stat table
type ActorConfig struct {
	Type            string   `toml:"type"`
	Team            string   `toml:"team"` // "attacker" or "defender"
	Speed           float64  `toml:"speed"`
	Damage          int      `toml:"damage"`
	AttackInterval  Duration `toml:"attack_interval"`
	Range           float64  `toml:"range"`
	Health          int      `toml:"health"`
	Asset           string   `toml:"asset"`
	Ranged          bool     `toml:"ranged,omitempty"`
	ProjectileSpeed float64  `toml:"projectile_speed,omitempty"`
	ProjectileAsset string   `toml:"projectile_asset,omitempty"`
}

// WaveConfig is one row of the wave composition table
type WaveConfig struct {
	Wave       int      `toml:"wave"`
	Actor      string   `toml:"actor"`
	Count      int      `toml:"count"`
	SpawnDelay Duration `toml:"spawn_delay"`
}

// PlacementConfig puts a defender on the board before play
type PlacementConfig struct {
	Actor  string `toml:"actor"`
	Lane   int    `toml:"lane"`
	Column int    `toml:"column"`
}

// Duration decodes Go duration strings such as "1.5s" or "3m"
type Duration time.Duration

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
