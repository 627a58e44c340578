package engine

import (
	"sync"

	"github.com/lixenwraith/lane-siege/core"
)

type queuedOp struct {
	entity core.Entity
	apply  func()
	// final ops also apply to destroyed entities
	final bool
}

// Commands buffers structural changes requested while systems iterate
// Nothing is applied until World.Flush, so a pass never observes its own inserts or removals
type Commands struct {
	mu       sync.Mutex
	destroys []core.Entity
	pending  map[core.Entity]struct{}
	ops      []queuedOp
}

// NewCommands creates an empty buffer
func NewCommands() *Commands {
	return &Commands{
		pending: make(map[core.Entity]struct{}),
	}
}

// Destroy queues e for destruction, duplicate requests collapse into one
func (c *Commands) Destroy(e core.Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[e]; ok {
		return
	}
	c.pending[e] = struct{}{}
	c.destroys = append(c.destroys, e)
}

// IsDestroyPending reports whether e is queued for destruction in the current buffer
func (c *Commands) IsDestroyPending(e core.Entity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[e]
	return ok
}

// Len returns the number of queued commands
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.destroys) + len(c.ops)
}

// Attach queues adding or replacing the T component of e
func Attach[T any](c *Commands, store *Store[T], e core.Entity, val T) {
	c.push(e, func() { store.SetComponent(e, val) })
}

// Detach queues removing the T component of e
func Detach[T any](c *Commands, store *Store[T], e core.Entity) {
	c.push(e, func() { store.RemoveEntity(e) })
}

// Strip queues removing the T component of e whether or not e is still alive
// Used to finalize view links of destroyed entities
func Strip[T any](c *Commands, store *Store[T], e core.Entity) {
	c.mu.Lock()
	c.ops = append(c.ops, queuedOp{entity: e, apply: func() { store.RemoveEntity(e) }, final: true})
	c.mu.Unlock()
}

func (c *Commands) push(e core.Entity, fn func()) {
	c.mu.Lock()
	c.ops = append(c.ops, queuedOp{entity: e, apply: fn})
	c.mu.Unlock()
}

// drain hands the buffered commands to the caller and resets the buffer
func (c *Commands) drain() ([]core.Entity, []queuedOp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	destroys, ops := c.destroys, c.ops
	c.destroys, c.ops = nil, nil
	if len(destroys) > 0 {
		clear(c.pending)
	}
	return destroys, ops
}

func (c *Commands) reset() {
	c.drain()
}
