package view

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/lane-siege/status"
)

// poolEntry holds the lazily resolved template and idle instances of one asset path
type poolEntry struct {
	template Template
	warned   bool
	idle     []Instance // FIFO, front is next to reuse
}

// Pool recycles presentation instances keyed by asset path
// All methods serialize on an internal mutex so the pool can be shared outside the tick goroutine
type Pool struct {
	mu       sync.Mutex
	resolver Resolver
	entries  map[string]*poolEntry
	log      *slog.Logger
	closed   bool

	statHits       *atomic.Int64
	statMisses     *atomic.Int64
	statUnresolved *atomic.Int64
	statDiscarded  *atomic.Int64
}

// NewPool creates a pool backed by resolver, reg may be nil
func NewPool(resolver Resolver, log *slog.Logger, reg *status.Registry) *Pool {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Pool{
		resolver:       resolver,
		entries:        make(map[string]*poolEntry),
		log:            log,
		statHits:       reg.Ints.Get("pool.hits"),
		statMisses:     reg.Ints.Get("pool.misses"),
		statUnresolved: reg.Ints.Get("pool.unresolved"),
		statDiscarded:  reg.Ints.Get("pool.discarded"),
	}
}

// Acquire returns an active instance for path, reusing an idle one when available
// Returns nil when the template cannot be resolved; callers must tolerate absent presentation
func (p *Pool) Acquire(path string) Instance {
	if path == "" {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	entry, ok := p.entries[path]
	if !ok {
		entry = &poolEntry{}
		p.entries[path] = entry
	}

	if len(entry.idle) > 0 {
		inst := entry.idle[0]
		entry.idle[0] = nil
		entry.idle = entry.idle[1:]
		inst.SetActive(true)
		p.statHits.Add(1)
		return inst
	}

	if entry.template == nil {
		if p.resolver != nil {
			if tmpl, ok := p.resolver.Resolve(path); ok && tmpl != nil {
				entry.template = tmpl
			}
		}
		if entry.template == nil {
			p.statUnresolved.Add(1)
			if !entry.warned {
				entry.warned = true
				p.log.Warn("template not resolved, entity continues without presentation", "path", path)
			}
			return nil
		}
	}

	inst := entry.template.Instantiate()
	if inst == nil {
		return nil
	}
	inst.SetActive(true)
	p.statMisses.Add(1)
	return inst
}

// Release deactivates inst and returns it to path's idle queue
// Nil or already inactive instances are ignored; instances of empty or unknown paths are destroyed
func (p *Pool) Release(path string, inst Instance) {
	if inst == nil || !inst.Active() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	inst.SetActive(false)
	inst.Detach()

	entry, ok := p.entries[path]
	if path == "" || !ok || p.closed {
		inst.Destroy()
		p.statDiscarded.Add(1)
		return
	}
	entry.idle = append(entry.idle, inst)
}

// Idle returns the number of pooled instances waiting for reuse under path
func (p *Pool) Idle(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.entries[path]; ok {
		return len(entry.idle)
	}
	return 0
}

// Close destroys every idle instance, later releases are discarded and acquires return nil
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for path, entry := range p.entries {
		for _, inst := range entry.idle {
			inst.Destroy()
		}
		delete(p.entries, path)
	}
	p.closed = true
}
