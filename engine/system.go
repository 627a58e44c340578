package engine

// System is one stage of the tick pipeline
// Lower priority values run first; the world flushes queued commands after each stage
type System interface {
	Update()
	Priority() int
	Name() string
}

// SystemBase provides common dependency for all system
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	World     *World
	Component *ComponentStore
	Resource  *ResourceStore
}

// NewSystemBase initializes base dependency from world
func NewSystemBase(w *World) SystemBase {
	return SystemBase{
		World:     w,
		Component: &w.Components,
		Resource:  w.Resources,
	}
}
