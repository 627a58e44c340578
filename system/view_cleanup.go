package system

import (
	"sync/atomic"

	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/parameter"
)

// ViewCleanupSystem returns instances of entities whose simulation data is gone
// It targets bindings marked pending release, or left without a transform, releases the instance once
// and strips the binding, prefab path and marker so the entity is never visited again
type ViewCleanupSystem struct {
	world *engine.World
	guard resourceGuard

	statReleased *atomic.Int64
}

func NewViewCleanupSystem(world *engine.World) engine.System {
	return &ViewCleanupSystem{
		world:        world,
		guard:        newResourceGuard(world, "view_cleanup"),
		statReleased: world.Status.Ints.Get("view.released"),
	}
}

func (s *ViewCleanupSystem) Name() string  { return "view_cleanup" }
func (s *ViewCleanupSystem) Priority() int { return parameter.PriorityViewCleanup }

func (s *ViewCleanupSystem) Update() {
	poolRes, ok := require[*engine.PoolResource](&s.guard)
	if !ok || poolRes.Pool == nil {
		return
	}
	pool := poolRes.Pool
	c := &s.world.Components
	cmd := s.world.Commands

	for _, e := range c.ViewBinding.GetAllEntities() {
		if !c.PendingRelease.HasEntity(e) && c.Transform.HasEntity(e) {
			continue
		}
		binding, ok := c.ViewBinding.GetComponent(e)
		if !ok {
			continue
		}
		if binding.Instance != nil {
			pool.Release(binding.AssetPath, binding.Instance)
			s.statReleased.Add(1)
		}
		engine.Strip(cmd, c.ViewBinding, e)
		engine.Strip(cmd, c.PrefabPath, e)
		engine.Strip(cmd, c.PendingRelease, e)
	}
}
