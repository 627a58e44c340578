package system

import (
	"reflect"

	"github.com/lixenwraith/lane-siege/engine"
)

// resourceGuard looks up world singletons and warns once per outage when one is missing
type resourceGuard struct {
	world  *engine.World
	system string
	warned map[reflect.Type]bool
}

func newResourceGuard(world *engine.World, system string) resourceGuard {
	return resourceGuard{world: world, system: system, warned: make(map[reflect.Type]bool)}
}

// require returns the resource of type T, logging a warning the first tick it is missing
// The caller skips its work for the tick and retries on the next one
func require[T any](g *resourceGuard) (T, bool) {
	res, ok := engine.GetResource[T](g.world.Resources)
	key := reflect.TypeFor[T]()
	if !ok {
		if !g.warned[key] {
			g.warned[key] = true
			g.world.Log.Warn("required resource missing, skipping tick", "system", g.system, "resource", key.String())
		}
		return res, false
	}
	if g.warned[key] {
		delete(g.warned, key)
		g.world.Log.Info("required resource available again", "system", g.system, "resource", key.String())
	}
	return res, true
}

// playing reports whether the match is in the Playing phase
func playing(g *resourceGuard) (*engine.GameState, bool) {
	gs, ok := require[*engine.GameStateResource](g)
	if !ok || gs.State == nil {
		return nil, false
	}
	return gs.State, gs.State.GetPhase() == engine.PhasePlaying
}
