package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/parameter"
)

func newCollisionHarness(t *testing.T) *harness {
	h := newHarness(t, level.Params{Rows: 5, Columns: 9}, nil, NewLaneIndexSystem, NewCollisionSystem)
	h.state.SetPhase(engine.PhasePlaying)
	return h
}

func TestCollisionHitThenKill(t *testing.T) {
	h := newCollisionHarness(t)
	target := h.place(component.TeamAttacker, 2, 4, 30)
	tpos, _ := h.world.Components.Position.GetComponent(target)

	// 0.3 along the lane: squared distance 0.09 < 0.25
	shot := h.shoot(2, tpos.World.Add(mgl64.Vec3{-0.3, 0, 0}), 20)
	h.tick(0)

	hp := h.health(target)
	if hp.Current != 10 || hp.Max != 30 || hp.Dead {
		t.Errorf("Expected 10/30 alive, got %+v", hp)
	}
	if h.world.Exists(shot) {
		t.Error("Expected projectile destroyed after its hit")
	}
	if !h.world.Exists(target) {
		t.Fatal("Expected target still alive")
	}

	second := h.shoot(2, tpos.World.Add(mgl64.Vec3{-0.3, 0, 0}), 20)
	h.tick(0)

	if h.world.Exists(target) || h.world.Exists(second) {
		t.Error("Expected both target and projectile destroyed")
	}
	if h.state.KillCount.Load() != 1 {
		t.Errorf("Expected one kill, got %d", h.state.KillCount.Load())
	}
}

func TestCollisionStaysInLane(t *testing.T) {
	h := newCollisionHarness(t)
	// Same world point, different lane bucket
	other := h.place(component.TeamAttacker, 3, 4, 30)
	opos, _ := h.world.Components.Position.GetComponent(other)

	shot := h.shoot(2, opos.World, 20)
	h.tick(0)

	if h.health(other).Current != 30 {
		t.Error("Expected target in another lane untouched")
	}
	if !h.world.Exists(shot) {
		t.Error("Expected projectile to survive a miss")
	}
	if got := h.world.Status.Ints.Get("collision.tests").Load(); got != 0 {
		t.Errorf("Expected no candidates tested outside the lane, got %d", got)
	}
}

func TestCollisionFirstInBucketSingleHit(t *testing.T) {
	h := newCollisionHarness(t)
	first := h.place(component.TeamAttacker, 1, 4.4, 30)
	nearest := h.place(component.TeamAttacker, 1, 4.0, 30)

	shot := h.shoot(1, laneWorld(h.lvl, 1, 4.0), 5)
	h.tick(0)

	if h.health(first).Current != 25 {
		t.Errorf("Expected first-in-bucket target hit, got %+v", h.health(first))
	}
	if h.health(nearest).Current != 30 {
		t.Errorf("Expected nearer target untouched, got %+v", h.health(nearest))
	}
	if h.world.Exists(shot) {
		t.Error("Expected projectile destroyed")
	}
	if got := h.world.Status.Ints.Get("combat.hits").Load(); got != 1 {
		t.Errorf("Expected a single damage application, got %d", got)
	}
}

func TestCollisionSkipsFriendlyAndPending(t *testing.T) {
	h := newCollisionHarness(t)
	friend := h.place(component.TeamDefender, 0, 3, 30)
	doomed := h.place(component.TeamAttacker, 0, 3, 30)
	h.world.Commands.Destroy(doomed)

	// Runs collision directly so the pending destroy is still queued
	h.world.Systems()[0].Update()
	shot := h.shoot(0, laneWorld(h.lvl, 0, 3), 10)
	h.world.Systems()[1].Update()

	if h.health(friend).Current != 30 || h.health(doomed).Current != 30 {
		t.Error("Expected friendly and pending targets skipped")
	}
	if h.world.Commands.IsDestroyPending(shot) {
		t.Error("Expected no hit without a valid target")
	}
}

func TestCollisionFrozenOutsidePlaying(t *testing.T) {
	h := newCollisionHarness(t)
	h.state.SetPhase(engine.PhasePreparing)
	target := h.place(component.TeamAttacker, 0, 3, 30)
	h.shoot(0, laneWorld(h.lvl, 0, 3), 10)
	h.tick(0)

	if h.health(target).Current != 30 {
		t.Error("Expected no collisions while Preparing")
	}
}

func TestHealthInvariantAfterFlush(t *testing.T) {
	h := newCollisionHarness(t)
	target := h.place(component.TeamAttacker, 0, 3, 30)
	for range 3 {
		h.shoot(0, laneWorld(h.lvl, 0, 3), 12)
	}
	h.tick(0)

	h.world.Components.Health.ForEach(func(_ core.Entity, hp component.HealthComponent) {
		if hp.Current > hp.Max || hp.Dead != (hp.Current <= 0) {
			t.Errorf("Health invariant broken: %+v", hp)
		}
	})
	if h.world.Exists(target) {
		t.Error("Expected the third hit to kill the target")
	}
}

func TestCollisionSweepsFastProjectile(t *testing.T) {
	h := newHarness(t, level.Params{Rows: 5, Columns: 9}, nil, NewMovementSystem, NewLaneIndexSystem, NewCollisionSystem)
	h.state.SetPhase(engine.PhasePlaying)

	behind := h.place(component.TeamAttacker, 2, 1.0, 30)
	target := h.place(component.TeamAttacker, 2, 2.75, 30)
	shot := h.shoot(2, laneWorld(h.lvl, 2, 2.0), 20)
	proj, _ := h.world.Components.Projectile.GetComponent(shot)
	proj.Speed = parameter.DefaultProjectileSpeed
	h.world.Components.Projectile.SetComponent(shot, proj)

	// 6 units/s over the capped delta covers 1.5, wider than the hit window
	h.tick(parameter.MaxTickDelta)

	if hp := h.health(target); hp.Current != 10 {
		t.Errorf("Expected target crossed during the step to take the hit, got %+v", hp)
	}
	if h.world.Exists(shot) {
		t.Error("Expected projectile destroyed after its hit")
	}
	if hp := h.health(behind); hp.Current != 30 {
		t.Errorf("Expected target behind the starting point untouched, got %+v", hp)
	}
}
