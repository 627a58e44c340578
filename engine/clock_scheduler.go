package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lane-siege/parameter"
	"github.com/lixenwraith/lane-siege/status"
)

// Ticker advances a simulation by dt
type Ticker interface {
	Tick(dt time.Duration)
}

// TickerFunc adapts a function to Ticker
type TickerFunc func(dt time.Duration)

// Tick calls f(dt)
func (f TickerFunc) Tick(dt time.Duration) { f(dt) }

// ClockScheduler drives a Ticker on a fixed interval with drift correction
// dt is measured wall time between ticks, capped at parameter.MaxTickDelta so a stall never produces a huge step
type ClockScheduler struct {
	target       Ticker
	tickInterval time.Duration
	now          func() time.Time

	paused    atomic.Bool
	running   atomic.Bool
	tickCount atomic.Uint64

	// Called after each tick, from the scheduler goroutine
	onTick func(n uint64)

	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler for target
// A non-positive interval falls back to parameter.TickInterval
func NewClockScheduler(target Ticker, tickInterval time.Duration, reg *status.Registry) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &ClockScheduler{
		target:       target,
		tickInterval: tickInterval,
		now:          time.Now,
		statTicks:    reg.Ints.Get("engine.ticks"),
	}
}

// OnTick sets a callback run after every tick, must be called before Run
func (cs *ClockScheduler) OnTick(fn func(n uint64)) {
	cs.onTick = fn
}

// Pause stops ticking the target while keeping the loop alive
func (cs *ClockScheduler) Pause() { cs.paused.Store(true) }

// Resume continues ticking after Pause
func (cs *ClockScheduler) Resume() { cs.paused.Store(false) }

// IsPaused reports the pause flag
func (cs *ClockScheduler) IsPaused() bool { return cs.paused.Load() }

// TickCount returns ticks delivered so far
func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

// Run ticks until ctx is cancelled
// Returns ctx.Err() on cancellation; a second concurrent Run returns immediately with nil
func (cs *ClockScheduler) Run(ctx context.Context) error {
	if !cs.running.CompareAndSwap(false, true) {
		return nil
	}
	defer cs.running.Store(false)

	last := cs.now()
	deadline := last.Add(cs.tickInterval)

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		now := cs.now()
		dt := now.Sub(last)
		last = now
		if dt > parameter.MaxTickDelta {
			dt = parameter.MaxTickDelta
		}

		if !cs.paused.Load() {
			cs.target.Tick(dt)
			n := cs.tickCount.Add(1)
			cs.statTicks.Store(int64(n))
			if cs.onTick != nil {
				cs.onTick(n)
			}
		}

		deadline = deadline.Add(cs.tickInterval)
		// Fell too far behind, resynchronize instead of bursting
		if now.Sub(deadline) > cs.tickInterval*2 {
			deadline = now.Add(cs.tickInterval)
		}
		sleep := deadline.Sub(cs.now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
