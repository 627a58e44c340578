// Package game assembles a world, its resources and the tick pipeline into one simulation instance
// Instances share nothing, so several can run side by side
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/rules"
	"github.com/lixenwraith/lane-siege/status"
	"github.com/lixenwraith/lane-siege/system"
	"github.com/lixenwraith/lane-siege/view"
)

// ErrNoLevel is returned when a simulation is built without a level
var ErrNoLevel = errors.New("no level")

// Options configure a simulation
type Options struct {
	Level *level.Level
	// Policy defaults to rules.StandardPolicy
	Policy engine.Policy
	// Resolver maps asset paths to templates; nil leaves every entity without presentation
	Resolver view.Resolver
	Log      *slog.Logger
	Status   *status.Registry
}

// Simulation is the exposed surface of one match
// Tick, Start and RequestSpawn may be called from any goroutine; Subscribe must happen before ticking
type Simulation struct {
	world *engine.World
	level *level.Level
	state *engine.GameState
	clock *engine.TimeResource
	pool  *view.Pool
	log   *slog.Logger

	closeOnce sync.Once
}

// New builds a simulation in the Preparing phase with the level's placements queued
func New(opts Options) (*Simulation, error) {
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.Policy == nil {
		opts.Policy = rules.StandardPolicy{}
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	lvl := opts.Level
	world := engine.NewWorld(log, reg)
	s := &Simulation{
		world: world,
		level: lvl,
		state: engine.NewGameState(lvl.Duration, lvl.TotalWaves, lvl.MaxReached),
		clock: &engine.TimeResource{},
		pool:  view.NewPool(opts.Resolver, log.With("component", "pool"), reg),
		log:   log,
	}

	engine.AddResource(world.Resources, s.clock)
	engine.AddResource(world.Resources, &engine.LevelResource{Level: lvl})
	engine.AddResource(world.Resources, &engine.GameStateResource{State: s.state})
	engine.AddResource(world.Resources, &engine.LaneIndexResource{Index: engine.NewLaneIndex(lvl.Rows)})
	engine.AddResource(world.Resources, &engine.PolicyResource{Policy: opts.Policy})
	engine.AddResource(world.Resources, &engine.PoolResource{Pool: s.pool})

	for _, ctor := range []func(*engine.World) engine.System{
		system.NewGameLoopSystem,
		system.NewWaveDirectorSystem,
		system.NewSpawnSystem,
		system.NewMovementSystem,
		system.NewLaneIndexSystem,
		system.NewCombatSystem,
		system.NewCollisionSystem,
		system.NewViewSyncSystem,
		system.NewViewCleanupSystem,
	} {
		world.AddSystem(ctor(world))
	}

	for _, p := range lvl.Placements {
		world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{
			ActorType: p.ActorType,
			Count:     1,
			Lane:      p.Lane,
			Offset:    (float64(p.Column) + 0.5) * lvl.CellSize,
			HasOffset: true,
		})
	}

	log.Info("simulation ready",
		"level", lvl.Name, "rows", lvl.Rows, "columns", lvl.Columns,
		"waves", lvl.TotalWaves, "duration", lvl.Duration, "policy", opts.Policy.Name(),
		"placements", len(lvl.Placements))
	return s, nil
}

// Tick advances the simulation by dt; negative deltas are treated as zero
func (s *Simulation) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.world.RunSafe(func() {
		s.clock.Advance(dt)
		s.world.UpdateLocked()
	})
}

// Start requests the Preparing -> Playing transition on the next tick
func (s *Simulation) Start() {
	s.world.PushEvent(event.EventGameStart, nil)
}

// RequestSpawn queues count actors of actorType, delay apart, on lane (-1 rotates lanes)
func (s *Simulation) RequestSpawn(actorType string, count int, delay time.Duration, lane int) error {
	if count <= 0 {
		return fmt.Errorf("spawn %q: count must be positive, got %d", actorType, count)
	}
	if lane >= s.level.Rows {
		return fmt.Errorf("spawn %q: lane %d outside %d rows", actorType, lane, s.level.Rows)
	}
	if _, ok := s.level.Actor(actorType); !ok {
		return fmt.Errorf("spawn %q: unknown actor type", actorType)
	}
	s.world.Status.Ints.Get("spawn.requests").Add(1)
	s.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{
		ActorType: actorType,
		Count:     count,
		Delay:     delay,
		Lane:      lane,
	})
	return nil
}

// Subscribe attaches an outside hook to the simulation's events
func (s *Simulation) Subscribe(h event.Handler) {
	s.world.RegisterHandler(h)
}

// Snapshot returns a read-only copy of the match state
func (s *Simulation) Snapshot() engine.GameSnapshot {
	snap := s.state.Snapshot()
	snap.Tick = s.world.Tick()
	return snap
}

// Census counts live entities per prefab path; entities without one are counted under ""
func (s *Simulation) Census() map[string]int {
	counts := make(map[string]int)
	c := &s.world.Components
	c.Position.ForEach(func(e core.Entity, _ component.PositionComponent) {
		if !s.world.Exists(e) {
			return
		}
		prefab, _ := c.PrefabPath.GetComponent(e)
		counts[prefab.Path]++
	})
	return counts
}

// Level returns the level the simulation was built from
func (s *Simulation) Level() *level.Level { return s.level }

// World exposes the underlying world for presentation and tests
func (s *Simulation) World() *engine.World { return s.world }

// Pool exposes the presentation pool for components owning instances outside the simulation
func (s *Simulation) Pool() *view.Pool { return s.pool }

// Close disposes every pooled instance; the simulation must not tick afterwards
func (s *Simulation) Close() {
	s.closeOnce.Do(func() {
		s.world.RunSafe(func() {
			c := &s.world.Components
			for _, e := range c.ViewBinding.GetAllEntities() {
				if b, ok := c.ViewBinding.GetComponent(e); ok && b.Instance != nil {
					b.Instance.Destroy()
				}
			}
			s.pool.Close()
		})
		s.log.Info("simulation closed", "ticks", s.world.Tick())
	})
}

var _ engine.Ticker = (*Simulation)(nil)
