package system

import (
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/parameter"
)

// ViewSyncSystem binds live entities to pooled instances and pushes transforms into them
// Data only flows from simulation to presentation; an unresolved asset is retried each tick
type ViewSyncSystem struct {
	world *engine.World
	guard resourceGuard
}

func NewViewSyncSystem(world *engine.World) engine.System {
	return &ViewSyncSystem{
		world: world,
		guard: newResourceGuard(world, "view_sync"),
	}
}

func (s *ViewSyncSystem) Name() string  { return "view_sync" }
func (s *ViewSyncSystem) Priority() int { return parameter.PriorityViewSync }

func (s *ViewSyncSystem) Update() {
	poolRes, ok := require[*engine.PoolResource](&s.guard)
	if !ok || poolRes.Pool == nil {
		return
	}
	pool := poolRes.Pool
	c := &s.world.Components

	for _, e := range c.ViewBinding.GetAllEntities() {
		if c.PendingRelease.HasEntity(e) {
			continue
		}
		tr, ok := c.Transform.GetComponent(e)
		if !ok {
			continue
		}
		binding, ok := c.ViewBinding.GetComponent(e)
		if !ok {
			continue
		}

		if binding.Instance == nil {
			binding.Instance = pool.Acquire(binding.AssetPath)
			if binding.Instance == nil {
				continue
			}
			c.ViewBinding.SetComponent(e, binding)
		}
		binding.Instance.SetTransform(tr.Position, tr.Rotation, tr.Scale)
	}
}
