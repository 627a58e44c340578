package system

import (
	"sync/atomic"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/parameter"
)

// MovementSystem advances mobile actors and projectiles along their lanes while Playing
// An attacker reaching offset 0 counts as reaching the end and is destroyed;
// a projectile leaving the lane is destroyed
type MovementSystem struct {
	world *engine.World
	guard resourceGuard

	statReached *atomic.Int64
	statExpired *atomic.Int64
}

func NewMovementSystem(world *engine.World) engine.System {
	return &MovementSystem{
		world:       world,
		guard:       newResourceGuard(world, "movement"),
		statReached: world.Status.Ints.Get("lane.reached_end"),
		statExpired: world.Status.Ints.Get("projectile.expired"),
	}
}

func (s *MovementSystem) Name() string  { return "movement" }
func (s *MovementSystem) Priority() int { return parameter.PriorityMovement }

func (s *MovementSystem) Update() {
	state, ok := playing(&s.guard)
	if !ok {
		return
	}
	lvlRes, ok := require[*engine.LevelResource](&s.guard)
	if !ok || lvlRes.Level == nil {
		return
	}
	timeRes, ok := require[*engine.TimeResource](&s.guard)
	if !ok {
		return
	}
	dt := timeRes.Delta.Seconds()
	if dt <= 0 {
		return
	}

	c := &s.world.Components
	cmd := s.world.Commands
	lvl := lvlRes.Level
	laneLength := lvl.LaneLength()

	for _, e := range c.Mobile.GetAllEntities() {
		mobile, ok := c.Mobile.GetComponent(e)
		if !ok || mobile.Speed <= 0 {
			continue
		}
		if combatant, ok := c.Combatant.GetComponent(e); ok && combatant.Engaged {
			continue
		}
		pos, ok := c.Position.GetComponent(e)
		if !ok {
			continue
		}
		faction, _ := c.Faction.GetComponent(e)

		pos.Offset += faction.Team.Direction() * mobile.Speed * dt
		if faction.Team == component.TeamAttacker && pos.Offset <= 0 {
			pos.Offset = 0
			s.reachEnd(state, e, pos)
		}
		s.place(lvl.CellSize, e, pos)
	}

	for _, e := range c.Projectile.GetAllEntities() {
		proj, ok := c.Projectile.GetComponent(e)
		if !ok {
			continue
		}
		pos, ok := c.Position.GetComponent(e)
		if !ok {
			continue
		}
		proj.Step = proj.Direction * proj.Speed * dt
		c.Projectile.SetComponent(e, proj)
		pos.Offset += proj.Step
		if pos.Offset > laneLength || pos.Offset < 0 {
			cmd.Destroy(e)
			s.statExpired.Add(1)
			continue
		}
		s.place(lvl.CellSize, e, pos)
	}
}

// place writes the new offset and mirrors it into world space and the transform
func (s *MovementSystem) place(cellSize float64, e core.Entity, pos component.PositionComponent) {
	c := &s.world.Components
	pos.World = laneWorldAt(cellSize, pos.Lane, pos.Offset)
	c.Position.SetComponent(e, pos)
	if tr, ok := c.Transform.GetComponent(e); ok {
		tr.Position = pos.World
		c.Transform.SetComponent(e, tr)
	}
}

func (s *MovementSystem) reachEnd(state *engine.GameState, e core.Entity, pos component.PositionComponent) {
	if s.world.Commands.IsDestroyPending(e) {
		return
	}
	s.world.Commands.Destroy(e)
	state.ReachedEndCount.Add(1)
	s.statReached.Add(1)

	actor, _ := s.world.Components.Actor.GetComponent(e)
	s.world.Log.Info("attacker reached end", "entity", e, "actor", actor.Type, "lane", pos.Lane)
	s.world.Emit(event.EventReachedEnd, &event.ReachedEndPayload{
		Entity:    e,
		ActorType: actor.Type,
		Lane:      pos.Lane,
	})
}
