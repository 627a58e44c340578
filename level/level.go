// Package level holds the typed, validated records a simulation is built from
// Records arrive from an external loader; nothing here parses text
package level

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/parameter"
)

// ErrInvalidParams is returned when level parameters cannot describe a playable board
var ErrInvalidParams = errors.New("invalid level parameters")

// Params are the board and pacing parameters of a level
type Params struct {
	Name         string
	Rows         int
	Columns      int
	CellSize     float64
	Duration     time.Duration
	TotalWaves   int
	WaveInterval time.Duration
	// MaxReached is how many attackers may reach the defended end before defeat
	MaxReached int
}

// LaneLength returns the length of every lane in world units
func (p Params) LaneLength() float64 {
	return float64(p.Columns) * p.CellSize
}

// ActorStats is one row of the actor stat table
type ActorStats struct {
	Type           string
	Team           component.Team
	Speed          float64
	Damage         int
	AttackInterval time.Duration
	Range          float64
	Health         int
	AssetPath      string

	// Ranged actors fire projectiles of ProjectileAsset travelling at ProjectileSpeed
	Ranged          bool
	ProjectileSpeed float64
	ProjectileAsset string
}

// Placement puts a defender on the board before play starts
type Placement struct {
	ActorType string
	Lane      int
	Column    int
}

// Level is a complete, validated level
type Level struct {
	Params
	Actors     map[string]ActorStats
	Waves      *WaveTable
	Placements []Placement
}

// New validates params and builds a level
// Bad actor, wave and placement rows are skipped with a warning; only unusable params fail
func New(params Params, actors []ActorStats, waves []WaveEntry, placements []Placement, log *slog.Logger) (*Level, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	params = applyDefaults(params)
	if params.Rows <= 0 || params.Columns <= 0 || params.CellSize <= 0 {
		return nil, fmt.Errorf("%w: rows=%d columns=%d cell=%v", ErrInvalidParams, params.Rows, params.Columns, params.CellSize)
	}
	if params.Duration < 0 || params.WaveInterval < 0 {
		return nil, fmt.Errorf("%w: negative duration or wave interval", ErrInvalidParams)
	}

	lvl := &Level{
		Params: params,
		Actors: make(map[string]ActorStats, len(actors)),
	}

	for _, a := range actors {
		if reason := validateActor(a); reason != "" {
			log.Warn("skipping actor", "actor", a.Type, "reason", reason)
			continue
		}
		if _, dup := lvl.Actors[a.Type]; dup {
			log.Warn("skipping actor", "actor", a.Type, "reason", "duplicate type")
			continue
		}
		lvl.Actors[a.Type] = a
	}

	lvl.Waves = NewWaveTable(waves, lvl.Actors, log)
	if lvl.TotalWaves <= 0 {
		lvl.TotalWaves = lvl.Waves.MaxWave()
	}

	for _, p := range placements {
		a, ok := lvl.Actors[p.ActorType]
		switch {
		case !ok:
			log.Warn("skipping placement", "actor", p.ActorType, "reason", "unknown actor type")
		case p.Lane < 0 || p.Lane >= params.Rows:
			log.Warn("skipping placement", "actor", p.ActorType, "lane", p.Lane, "reason", "lane out of range")
		case p.Column < 0 || p.Column >= params.Columns:
			log.Warn("skipping placement", "actor", p.ActorType, "column", p.Column, "reason", "column out of range")
		case a.Team != component.TeamDefender:
			log.Warn("skipping placement", "actor", p.ActorType, "reason", "only defenders can be placed")
		default:
			lvl.Placements = append(lvl.Placements, p)
		}
	}

	return lvl, nil
}

// Actor returns the stats for actorType
func (l *Level) Actor(actorType string) (ActorStats, bool) {
	a, ok := l.Actors[actorType]
	return a, ok
}

func applyDefaults(p Params) Params {
	if p.Rows == 0 {
		p.Rows = parameter.DefaultRows
	}
	if p.Columns == 0 {
		p.Columns = parameter.DefaultColumns
	}
	if p.CellSize == 0 {
		p.CellSize = parameter.DefaultCellSize
	}
	if p.Duration == 0 {
		p.Duration = parameter.DefaultDuration
	}
	if p.WaveInterval == 0 {
		p.WaveInterval = parameter.DefaultWaveInterval
	}
	if p.MaxReached == 0 {
		p.MaxReached = parameter.DefaultMaxReached
	}
	return p
}

func validateActor(a ActorStats) string {
	switch {
	case a.Type == "":
		return "empty type"
	case a.Team != component.TeamDefender && a.Team != component.TeamAttacker:
		return "unknown team"
	case a.Health <= 0:
		return "health must be positive"
	case a.Speed < 0:
		return "negative speed"
	case a.Damage < 0 || a.AttackInterval < 0 || a.Range < 0:
		return "negative combat stat"
	}
	return ""
}
