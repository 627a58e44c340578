package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/level"
)

func TestSpawnStaggersRequest(t *testing.T) {
	h := newHarness(t, level.Params{Rows: 3, Columns: 9}, nil, NewSpawnSystem)
	h.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{
		ActorType: "walker", Count: 3, Delay: 2 * time.Second, Lane: -1,
	})

	h.tick(0)
	positions := h.world.Components.Position
	if positions.CountEntities() != 1 {
		t.Fatalf("Expected first actor immediately, got %d", positions.CountEntities())
	}
	h.tick(time.Second)
	if positions.CountEntities() != 1 {
		t.Errorf("Expected second actor to wait for its delay, got %d", positions.CountEntities())
	}
	h.tick(time.Second)
	h.tick(2 * time.Second)
	if positions.CountEntities() != 3 {
		t.Fatalf("Expected all three actors after 4s, got %d", positions.CountEntities())
	}

	// Rotating lanes, spawned at the far end of each lane
	lanes := map[int]bool{}
	positions.ForEach(func(_ core.Entity, pos component.PositionComponent) {
		lanes[pos.Lane] = true
		if pos.Offset != h.lvl.LaneLength() {
			t.Errorf("Expected attacker at lane end, got offset %v", pos.Offset)
		}
	})
	if len(lanes) != 3 {
		t.Errorf("Expected one actor per lane, got %v", lanes)
	}
}

func TestSpawnBuildsActorComponents(t *testing.T) {
	h := newHarness(t, level.Params{}, nil, NewSpawnSystem)
	h.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{
		ActorType: "shooter", Count: 1, Lane: 2, Offset: 1.5, HasOffset: true,
	})
	h.tick(0)

	c := &h.world.Components
	all := c.Actor.GetAllEntities()
	if len(all) != 1 {
		t.Fatalf("Expected one actor, got %d", len(all))
	}
	e := all[0]

	pos, _ := c.Position.GetComponent(e)
	if pos.Lane != 2 || pos.Offset != 1.5 {
		t.Errorf("Unexpected position %+v", pos)
	}
	if c.Mobile.HasEntity(e) {
		t.Error("Expected stationary defender without Mobile")
	}
	cb, ok := c.Combatant.GetComponent(e)
	if !ok || !cb.Ranged || cb.ProjectileAsset != "fx/pea" {
		t.Errorf("Unexpected combatant %+v", cb)
	}
	if hp, _ := c.Health.GetComponent(e); hp.Current != 50 || hp.Max != 50 {
		t.Errorf("Unexpected health %+v", hp)
	}
	if vb, _ := c.ViewBinding.GetComponent(e); vb.AssetPath != "actors/shooter" || vb.Instance != nil {
		t.Errorf("Unexpected binding %+v", vb)
	}
	if pp, _ := c.PrefabPath.GetComponent(e); pp.Path != "actors/shooter" {
		t.Errorf("Unexpected prefab path %+v", pp)
	}
}

func TestSpawnSkipsUnknownActor(t *testing.T) {
	h := newHarness(t, level.Params{}, nil, NewSpawnSystem)
	h.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{ActorType: "dragon", Count: 2, Lane: -1})
	h.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{ActorType: "walker", Count: 1, Lane: 9})
	h.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{ActorType: "walker", Count: 1, Lane: 0})
	h.tick(0)

	if n := h.world.Components.Actor.CountEntities(); n != 1 {
		t.Errorf("Expected only the valid request spawned, got %d", n)
	}
	if got := h.world.Status.Ints.Get("spawn.rejected").Load(); got != 3 {
		t.Errorf("Expected 3 rejected actors, got %d", got)
	}
}

func TestSpawnDropsPendingAfterMatchEnd(t *testing.T) {
	h := newHarness(t, level.Params{}, nil, NewSpawnSystem)
	h.world.PushEvent(event.EventSpawnRequest, &event.SpawnRequestPayload{
		ActorType: "walker", Count: 5, Delay: time.Second, Lane: -1,
	})
	h.tick(0)
	h.state.SetPhase(engine.PhaseDefeat)
	h.tick(10 * time.Second)

	if n := h.world.Components.Actor.CountEntities(); n != 1 {
		t.Errorf("Expected spawning to stop at match end, got %d actors", n)
	}
}
