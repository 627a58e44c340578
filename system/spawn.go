package system

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/parameter"
)

// pendingSpawn is one actor waiting for its staggered creation time
type pendingSpawn struct {
	actorType string
	wave      int
	lane      int // -1 = next lane in rotation
	offset    float64
	hasOffset bool
	due       time.Duration
}

// SpawnSystem turns spawn requests into actors
// A request for count actors with delay d schedules them at now, now+d, ... now+(count-1)d;
// creation goes through the command queue and becomes visible after this stage's flush
type SpawnSystem struct {
	world *engine.World
	guard resourceGuard

	pending  []pendingSpawn
	nextLane int

	statCreated  *atomic.Int64
	statRejected *atomic.Int64
}

func NewSpawnSystem(world *engine.World) engine.System {
	return &SpawnSystem{
		world:        world,
		guard:        newResourceGuard(world, "spawn"),
		statCreated:  world.Status.Ints.Get("spawn.created"),
		statRejected: world.Status.Ints.Get("spawn.rejected"),
	}
}

func (s *SpawnSystem) Name() string  { return "spawn" }
func (s *SpawnSystem) Priority() int { return parameter.PrioritySpawn }

func (s *SpawnSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSpawnRequest}
}

func (s *SpawnSystem) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SpawnRequestPayload)
	if !ok || p == nil {
		return
	}
	if p.Count <= 0 {
		s.world.Log.Warn("spawn request ignored", "actor", p.ActorType, "count", p.Count, "reason", "non-positive count")
		s.statRejected.Add(1)
		return
	}

	now := s.now()
	for i := range p.Count {
		s.pending = append(s.pending, pendingSpawn{
			actorType: p.ActorType,
			wave:      p.Wave,
			lane:      p.Lane,
			offset:    p.Offset,
			hasOffset: p.HasOffset,
			due:       now + time.Duration(i)*p.Delay,
		})
	}
}

// Pending returns the number of actors scheduled but not yet created
func (s *SpawnSystem) Pending() int {
	return len(s.pending)
}

func (s *SpawnSystem) now() time.Duration {
	if tr, ok := engine.GetResource[*engine.TimeResource](s.world.Resources); ok {
		return tr.Elapsed
	}
	return 0
}

func (s *SpawnSystem) Update() {
	if len(s.pending) == 0 {
		return
	}
	gsRes, ok := require[*engine.GameStateResource](&s.guard)
	if !ok || gsRes.State == nil {
		return
	}
	if phase := gsRes.State.GetPhase(); phase.Terminal() {
		s.world.Log.Debug("dropping pending spawns after match end", "count", len(s.pending), "phase", phase)
		s.pending = s.pending[:0]
		return
	}
	lvlRes, ok := require[*engine.LevelResource](&s.guard)
	if !ok || lvlRes.Level == nil {
		return
	}
	lvl := lvlRes.Level
	now := s.now()

	// Keep order of the remaining entries for deterministic creation
	remaining := s.pending[:0]
	for _, p := range s.pending {
		if p.due > now {
			remaining = append(remaining, p)
			continue
		}
		s.create(lvl, p)
	}
	clear(s.pending[len(remaining):])
	s.pending = remaining
}

func (s *SpawnSystem) create(lvl *level.Level, p pendingSpawn) {
	stats, ok := lvl.Actor(p.actorType)
	if !ok {
		s.world.Log.Warn("spawn skipped", "actor", p.actorType, "wave", p.wave, "reason", "unknown actor type")
		s.statRejected.Add(1)
		return
	}

	lane := p.lane
	if lane < 0 {
		lane = s.nextLane % lvl.Rows
		s.nextLane++
	}
	if lane >= lvl.Rows {
		s.world.Log.Warn("spawn skipped", "actor", p.actorType, "lane", lane, "reason", "lane out of range")
		s.statRejected.Add(1)
		return
	}

	offset := p.offset
	if !p.hasOffset {
		offset = spawnOffset(lvl, stats.Team)
	}

	e := s.world.CreateEntity()
	cmd := s.world.Commands
	c := &s.world.Components
	worldPos := laneWorld(lvl, lane, offset)

	engine.Attach(cmd, c.Position, e, component.PositionComponent{Lane: lane, Offset: offset, World: worldPos})
	engine.Attach(cmd, c.Transform, e, component.NewTransform(worldPos))
	engine.Attach(cmd, c.Faction, e, component.FactionComponent{Team: stats.Team})
	engine.Attach(cmd, c.Actor, e, component.ActorComponent{Type: stats.Type})
	engine.Attach(cmd, c.Health, e, component.NewHealth(stats.Health))
	if stats.Speed > 0 {
		engine.Attach(cmd, c.Mobile, e, component.MobileComponent{Speed: stats.Speed})
	}
	if stats.Damage > 0 {
		projSpeed := stats.ProjectileSpeed
		if stats.Ranged && projSpeed <= 0 {
			projSpeed = parameter.DefaultProjectileSpeed
		}
		engine.Attach(cmd, c.Combatant, e, component.CombatantComponent{
			Damage:          stats.Damage,
			AttackInterval:  stats.AttackInterval,
			LastActionTime:  s.now(),
			Range:           stats.Range,
			Ranged:          stats.Ranged,
			ProjectileSpeed: projSpeed,
			ProjectileAsset: stats.ProjectileAsset,
		})
	}
	attachView(s.world, e, stats.AssetPath)

	s.statCreated.Add(1)
}

// attachView queues the presentation link for e, skipped when there is no asset
func attachView(w *engine.World, e core.Entity, assetPath string) {
	if assetPath == "" {
		return
	}
	engine.Attach(w.Commands, w.Components.ViewBinding, e, component.ViewBindingComponent{AssetPath: assetPath})
	engine.Attach(w.Commands, w.Components.PrefabPath, e, component.PrefabPathComponent{Path: assetPath})
}

// spawnOffset is where a team enters its lane: attackers at the far end, defenders in the first cell
func spawnOffset(lvl *level.Level, team component.Team) float64 {
	if team == component.TeamAttacker {
		return lvl.LaneLength()
	}
	return lvl.CellSize / 2
}

// laneWorld maps a lane coordinate onto the board plane: X along the lane, Y across lanes
func laneWorld(lvl *level.Level, lane int, offset float64) mgl64.Vec3 {
	return laneWorldAt(lvl.CellSize, lane, offset)
}

func laneWorldAt(cellSize float64, lane int, offset float64) mgl64.Vec3 {
	return mgl64.Vec3{offset, (float64(lane) + 0.5) * cellSize, 0}
}
