package engine

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/status"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	Components ComponentStore
	Resources  *ResourceStore
	Commands   *Commands
	Log        *slog.Logger
	Status     *status.Registry

	simStores  []AnyStore
	viewStores []AnyStore

	inbox  *event.EventQueue
	router *event.Router
	tick   atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty world
// A nil logger discards output, a nil registry gets a private one
func NewWorld(log *slog.Logger, reg *status.Registry) *World {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	inbox := event.NewEventQueue()
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Resources:    NewResourceStore(),
		Commands:     NewCommands(),
		Log:          log,
		Status:       reg,
		inbox:        inbox,
		router:       event.NewRouter(inbox),
		systems:      make([]System, 0, 16),
	}
	initComponentStores(w)
	return w
}

// CreateEntity reserves a new handle and marks it alive
// Handles are never reused within a world
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	w.Status.Ints.Get("world.created").Add(1)
	return id
}

// Exists reports whether e is alive
func (w *World) Exists(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// AliveCount returns the number of live entities
func (w *World) AliveCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	clear(w.alive)
	for _, s := range w.simStores {
		s.ClearAllComponents()
	}
	for _, s := range w.viewStores {
		s.ClearAllComponents()
	}
	w.Commands.reset()
}

// AddSystem adds a system and keeps the pipeline sorted by priority
// Systems implementing event.Handler are registered with the router
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	w.systems = append(w.systems, system)
	slices.SortStableFunc(w.systems, func(a, b System) int {
		return a.Priority() - b.Priority()
	})
	w.mu.Unlock()

	if h, ok := system.(event.Handler); ok {
		w.router.Register(h)
	}
}

// Systems returns a copy of all registered systems in run order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RegisterHandler subscribes a non-system handler such as an audio or persistence hook
func (w *World) RegisterHandler(h event.Handler) {
	w.router.Register(h)
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires a lock on the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// Update runs one tick under the update lock
func (w *World) Update() {
	w.RunSafe(w.UpdateLocked)
}

// UpdateLocked drains the inbox then runs every system in priority order,
// flushing structural commands after each one
func (w *World) UpdateLocked() {
	tick := w.tick.Add(1)

	if n := w.router.DispatchAll(); n > 0 {
		w.Log.Debug("inbox dispatched", "tick", tick, "events", n)
		w.Flush()
	}

	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update()
		w.Flush()
	}
}

// Tick returns the number of ticks run so far
func (w *World) Tick() int64 {
	return w.tick.Load()
}

// PushEvent queues an event for dispatch at the start of the next tick
// Safe from any goroutine; a full inbox overwrites its oldest events
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.inbox.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Tick:    w.tick.Load(),
	})
}

// Emit dispatches an event synchronously to subscribed handlers
// Used inside the tick so downstream stages observe the event in the same tick
func (w *World) Emit(eventType event.EventType, payload any) {
	w.router.Dispatch(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Tick:    w.tick.Load(),
	})
}

// Flush applies queued structural commands
// Destroys run first: the entity leaves the alive set and loses every simulation component;
// an entity still bound to a view instance is marked for release and keeps its view link
// Attach and detach operations then apply, skipping entities that are no longer alive, except Strip
// Flushing an empty queue is a no-op
func (w *World) Flush() int {
	destroys, ops := w.Commands.drain()
	if len(destroys) == 0 && len(ops) == 0 {
		return 0
	}

	stripped := make([]core.Entity, 0, len(destroys))
	w.mu.Lock()
	for _, e := range destroys {
		if _, ok := w.alive[e]; !ok {
			continue
		}
		delete(w.alive, e)
		stripped = append(stripped, e)
	}
	w.mu.Unlock()

	if len(stripped) > 0 {
		for _, s := range w.simStores {
			s.RemoveBatch(stripped)
		}
		c := &w.Components
		var unbound []core.Entity
		for _, e := range stripped {
			if c.ViewBinding.HasEntity(e) {
				c.PendingRelease.SetComponent(e, component.PendingReleaseComponent{})
			} else {
				unbound = append(unbound, e)
			}
		}
		for _, s := range w.viewStores {
			s.RemoveBatch(unbound)
		}
		w.Status.Ints.Get("world.destroyed").Add(int64(len(stripped)))
	}

	applied := 0
	for _, op := range ops {
		if !op.final && !w.Exists(op.entity) {
			continue
		}
		op.apply()
		applied++
	}

	return len(stripped) + applied
}
