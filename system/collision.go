package system

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/parameter"
)

// CollisionSystem resolves projectile hits while Playing
// Each projectile scans only its own lane bucket and hits the first live hostile, in bucket order,
// within the collision radius of the path covered by its last move; the first hit destroys the projectile
// and ends its scan
type CollisionSystem struct {
	world *engine.World
	guard resourceGuard

	statHits  *atomic.Int64
	statKills *atomic.Int64
	statTests *atomic.Int64
}

func NewCollisionSystem(world *engine.World) engine.System {
	return &CollisionSystem{
		world:     world,
		guard:     newResourceGuard(world, "collision"),
		statHits:  world.Status.Ints.Get("combat.hits"),
		statKills: world.Status.Ints.Get("combat.kills"),
		statTests: world.Status.Ints.Get("collision.tests"),
	}
}

func (s *CollisionSystem) Name() string  { return "collision" }
func (s *CollisionSystem) Priority() int { return parameter.PriorityCollision }

func (s *CollisionSystem) Update() {
	state, ok := playing(&s.guard)
	if !ok {
		return
	}
	liRes, ok := require[*engine.LaneIndexResource](&s.guard)
	if !ok || liRes.Index == nil {
		return
	}

	c := &s.world.Components
	cmd := s.world.Commands

	for _, p := range c.Projectile.GetAllEntities() {
		if cmd.IsDestroyPending(p) {
			continue
		}
		proj, ok := c.Projectile.GetComponent(p)
		if !ok {
			continue
		}
		pos, ok := c.Position.GetComponent(p)
		if !ok {
			continue
		}
		team, _ := c.Faction.GetComponent(p)
		from := pos.World.Sub(mgl64.Vec3{proj.Step, 0, 0})

		for _, candidate := range liRes.Index.Bucket(proj.Lane) {
			t := candidate.Entity
			if t == p || !s.world.Exists(t) || cmd.IsDestroyPending(t) {
				continue
			}
			hp, ok := c.Health.GetComponent(t)
			if !ok || hp.Dead {
				continue
			}
			if other, ok := c.Faction.GetComponent(t); !ok || !team.Team.Hostile(other.Team) {
				continue
			}

			s.statTests.Add(1)
			if core.PlanarSegmentDistSq(from, pos.World, candidate.World) >= parameter.CollisionRadiusSq {
				continue
			}

			killed := hp.ApplyDamage(proj.Damage)
			c.Health.SetComponent(t, hp)
			s.statHits.Add(1)
			if killed {
				killEntity(s.world, state, t, proj.Lane)
				s.statKills.Add(1)
			}
			cmd.Destroy(p)
			break
		}
	}
}
