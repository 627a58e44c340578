package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/parameter"
)

// CombatSystem runs attacks of combatants outside the projectile path while Playing
// Ranged combatants fire when a hostile is ahead in their lane within range;
// melee combatants engage the first hostile within reach in bucket order and stop moving while engaged
// An attack needs now - lastActionTime >= attackInterval and stamps lastActionTime as it lands
type CombatSystem struct {
	world *engine.World
	guard resourceGuard

	statShots *atomic.Int64
	statHits  *atomic.Int64
	statKills *atomic.Int64
}

func NewCombatSystem(world *engine.World) engine.System {
	return &CombatSystem{
		world:     world,
		guard:     newResourceGuard(world, "combat"),
		statShots: world.Status.Ints.Get("combat.shots"),
		statHits:  world.Status.Ints.Get("combat.hits"),
		statKills: world.Status.Ints.Get("combat.kills"),
	}
}

func (s *CombatSystem) Name() string  { return "combat" }
func (s *CombatSystem) Priority() int { return parameter.PriorityCombat }

func (s *CombatSystem) Update() {
	state, ok := playing(&s.guard)
	if !ok {
		return
	}
	liRes, ok := require[*engine.LaneIndexResource](&s.guard)
	if !ok || liRes.Index == nil {
		return
	}
	timeRes, ok := require[*engine.TimeResource](&s.guard)
	if !ok {
		return
	}
	lvlRes, ok := require[*engine.LevelResource](&s.guard)
	if !ok || lvlRes.Level == nil {
		return
	}

	now := timeRes.Elapsed
	c := &s.world.Components

	for _, e := range c.Combatant.GetAllEntities() {
		if s.world.Commands.IsDestroyPending(e) {
			continue
		}
		combatant, ok := c.Combatant.GetComponent(e)
		if !ok || combatant.Damage <= 0 {
			continue
		}
		pos, ok := c.Position.GetComponent(e)
		if !ok {
			continue
		}
		faction, ok := c.Faction.GetComponent(e)
		if !ok {
			continue
		}
		accept := s.hostileTo(e, faction.Team)

		if combatant.Ranged {
			s.fire(lvlRes.Level, liRes.Index, &combatant, pos, faction.Team, now, accept)
		} else {
			s.strike(state, liRes.Index, &combatant, pos, now, accept)
		}
		c.Combatant.SetComponent(e, combatant)
	}
}

// hostileTo accepts live, damageable lane entries on the other team
func (s *CombatSystem) hostileTo(self core.Entity, team component.Team) func(engine.LaneEntry) bool {
	c := &s.world.Components
	return func(entry engine.LaneEntry) bool {
		if entry.Entity == self || !s.world.Exists(entry.Entity) || s.world.Commands.IsDestroyPending(entry.Entity) {
			return false
		}
		hp, ok := c.Health.GetComponent(entry.Entity)
		if !ok || hp.Dead {
			return false
		}
		other, ok := c.Faction.GetComponent(entry.Entity)
		return ok && team.Hostile(other.Team)
	}
}

func (s *CombatSystem) fire(lvl *level.Level, li *engine.LaneIndex, combatant *component.CombatantComponent,
	pos component.PositionComponent, team component.Team, now time.Duration, accept func(engine.LaneEntry) bool) {

	dir := team.Direction()
	var seen bool
	if dir > 0 {
		seen = li.AnyAhead(pos.Lane, pos.Offset, combatant.Range, accept)
	} else {
		seen = li.AnyBehind(pos.Lane, pos.Offset, combatant.Range, accept)
	}
	if !seen || !combatant.Ready(now) {
		return
	}

	combatant.LastActionTime = now
	s.statShots.Add(1)

	offset := pos.Offset + dir*parameter.ProjectileSpawnLead
	shot := s.world.CreateEntity()
	cmd := s.world.Commands
	c := &s.world.Components
	worldPos := laneWorld(lvl, pos.Lane, offset)

	engine.Attach(cmd, c.Position, shot, component.PositionComponent{Lane: pos.Lane, Offset: offset, World: worldPos})
	engine.Attach(cmd, c.Transform, shot, component.NewTransform(worldPos))
	engine.Attach(cmd, c.Faction, shot, component.FactionComponent{Team: team})
	engine.Attach(cmd, c.Projectile, shot, component.ProjectileComponent{
		Damage:    combatant.Damage,
		Speed:     combatant.ProjectileSpeed,
		Lane:      pos.Lane,
		Direction: dir,
	})
	attachView(s.world, shot, combatant.ProjectileAsset)
}

func (s *CombatSystem) strike(state *engine.GameState, li *engine.LaneIndex, combatant *component.CombatantComponent,
	pos component.PositionComponent, now time.Duration, accept func(engine.LaneEntry) bool) {

	target, found := li.FirstWithin(pos.Lane, pos.Offset, combatant.Range, accept)
	combatant.Engaged = found
	if !found || !combatant.Ready(now) {
		return
	}

	c := &s.world.Components
	hp, ok := c.Health.GetComponent(target.Entity)
	if !ok {
		return
	}
	combatant.LastActionTime = now
	killed := hp.ApplyDamage(combatant.Damage)
	c.Health.SetComponent(target.Entity, hp)
	s.statHits.Add(1)

	if killed {
		combatant.Engaged = false
		killEntity(s.world, state, target.Entity, pos.Lane)
		s.statKills.Add(1)
	}
}

// killEntity queues destruction of a dead target and reports the kill
// Only attacker deaths count toward the match kill total; fallen defenders are still reported
func killEntity(w *engine.World, state *engine.GameState, e core.Entity, lane int) {
	w.Commands.Destroy(e)
	if f, ok := w.Components.Faction.GetComponent(e); ok && f.Team == component.TeamAttacker {
		state.KillCount.Add(1)
	}
	actor, _ := w.Components.Actor.GetComponent(e)
	w.Emit(event.EventKill, &event.KillPayload{
		Entity:    e,
		ActorType: actor.Type,
		Lane:      lane,
	})
}
