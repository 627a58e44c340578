package system

import (
	"sync/atomic"

	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/parameter"
)

// LaneIndexSystem rebuilds the per-lane buckets from scratch after movement
type LaneIndexSystem struct {
	world *engine.World
	guard resourceGuard

	statSkipped *atomic.Int64
}

func NewLaneIndexSystem(world *engine.World) engine.System {
	return &LaneIndexSystem{
		world:       world,
		guard:       newResourceGuard(world, "lane_index"),
		statSkipped: world.Status.Ints.Get("lane.off_board"),
	}
}

func (s *LaneIndexSystem) Name() string  { return "lane_index" }
func (s *LaneIndexSystem) Priority() int { return parameter.PriorityLaneIndex }

func (s *LaneIndexSystem) Update() {
	res, ok := require[*engine.LaneIndexResource](&s.guard)
	if !ok || res.Index == nil {
		return
	}
	res.Index.Rebuild(s.world.Components.Position)
	s.statSkipped.Store(int64(res.Index.Skipped()))
}
