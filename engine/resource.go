package engine

import (
	"reflect"
	"sync"
	"time"

	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/view"
)

// ResourceStore is a thread-safe container for world singletons
// Systems look resources up each tick so a missing one degrades to a skipped stage
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces the resource of type T
// Pointer types are recommended so systems can mutate in place
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.resources[reflect.TypeFor[T]()] = resource
}

// GetResource retrieves the resource of type T
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	val, ok := rs.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		panic("required resource not found: " + reflect.TypeFor[T]().String())
	}
	return res
}

// RemoveResource drops the resource of type T
func RemoveResource[T any](rs *ResourceStore) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.resources, reflect.TypeFor[T]())
}

// --- Core Resources ---

// TimeResource carries the clock of the current tick
type TimeResource struct {
	// Elapsed is simulation time since the world started ticking
	Elapsed time.Duration
	// Delta is the length of the current tick
	Delta time.Duration
	Tick  int64
}

// Advance moves the clock forward by dt
func (tr *TimeResource) Advance(dt time.Duration) {
	tr.Delta = dt
	tr.Elapsed += dt
	tr.Tick++
}

// LevelResource exposes the loaded level records
type LevelResource struct {
	Level *level.Level
}

// GameStateResource exposes the match singleton
type GameStateResource struct {
	State *GameState
}

// LaneIndexResource exposes the per-tick lane buckets
type LaneIndexResource struct {
	Index *LaneIndex
}

// PolicyResource exposes the level's victory and defeat rules
type PolicyResource struct {
	Policy Policy
}

// PoolResource exposes the presentation pool to the view stages
type PoolResource struct {
	Pool *view.Pool
}
