package system

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/rules"
	"github.com/lixenwraith/lane-siege/view"
)

type fakeInstance struct {
	active   bool
	released int
	pos      mgl64.Vec3
}

func (f *fakeInstance) Active() bool     { return f.active }
func (f *fakeInstance) SetActive(a bool) { f.active = a }
func (f *fakeInstance) Detach()          { f.released++ }
func (f *fakeInstance) Destroy()         {}
func (f *fakeInstance) SetTransform(p mgl64.Vec3, _ mgl64.Quat, _ mgl64.Vec3) {
	f.pos = p
}

type fakeTemplate struct{ made int }

func (t *fakeTemplate) Instantiate() view.Instance {
	t.made++
	return &fakeInstance{}
}

// harness is a world wired with every resource a system looks up
type harness struct {
	t     *testing.T
	world *engine.World
	state *engine.GameState
	clock *engine.TimeResource
	lvl   *level.Level
	pool  *view.Pool
	logs  *bytes.Buffer
}

var testActors = []level.ActorStats{
	{Type: "walker", Team: component.TeamAttacker, Speed: 1, Damage: 5, AttackInterval: time.Second, Range: 0.5, Health: 30, AssetPath: "actors/walker"},
	{Type: "shooter", Team: component.TeamDefender, Damage: 20, AttackInterval: time.Second, Range: 20, Health: 50, AssetPath: "actors/shooter", Ranged: true, ProjectileSpeed: 4, ProjectileAsset: "fx/pea"},
	{Type: "wall", Team: component.TeamDefender, Health: 100, AssetPath: "actors/wall"},
}

func newHarness(t *testing.T, params level.Params, waves []level.WaveEntry, systems ...func(*engine.World) engine.System) *harness {
	t.Helper()
	logs := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(logs, nil))

	lvl, err := level.New(params, testActors, waves, nil, log)
	if err != nil {
		t.Fatalf("level.New: %v", err)
	}

	templates := map[string]*fakeTemplate{"actors/walker": {}, "actors/shooter": {}, "actors/wall": {}, "fx/pea": {}}
	resolver := view.ResolverFunc(func(path string) (view.Template, bool) {
		tmpl, ok := templates[path]
		return tmpl, ok
	})

	w := engine.NewWorld(log, nil)
	h := &harness{
		t:     t,
		world: w,
		state: engine.NewGameState(lvl.Duration, lvl.TotalWaves, lvl.MaxReached),
		clock: &engine.TimeResource{},
		lvl:   lvl,
		pool:  view.NewPool(resolver, log, w.Status),
		logs:  logs,
	}
	engine.AddResource(w.Resources, h.clock)
	engine.AddResource(w.Resources, &engine.LevelResource{Level: lvl})
	engine.AddResource(w.Resources, &engine.GameStateResource{State: h.state})
	engine.AddResource(w.Resources, &engine.LaneIndexResource{Index: engine.NewLaneIndex(lvl.Rows)})
	engine.AddResource(w.Resources, &engine.PolicyResource{Policy: rules.StandardPolicy{}})
	engine.AddResource(w.Resources, &engine.PoolResource{Pool: h.pool})

	for _, ctor := range systems {
		w.AddSystem(ctor(w))
	}
	return h
}

func (h *harness) tick(dt time.Duration) {
	h.clock.Advance(dt)
	h.world.Update()
}

// place creates a fully formed entity directly, outside any pass
func (h *harness) place(team component.Team, lane int, offset float64, health int) core.Entity {
	w := h.world
	e := w.CreateEntity()
	c := &w.Components
	pos := laneWorld(h.lvl, lane, offset)
	c.Position.SetComponent(e, component.PositionComponent{Lane: lane, Offset: offset, World: pos})
	c.Transform.SetComponent(e, component.NewTransform(pos))
	c.Faction.SetComponent(e, component.FactionComponent{Team: team})
	if health > 0 {
		c.Health.SetComponent(e, component.NewHealth(health))
	}
	return e
}

// shoot creates a projectile with an explicit world position
func (h *harness) shoot(lane int, world mgl64.Vec3, damage int) core.Entity {
	w := h.world
	e := w.CreateEntity()
	c := &w.Components
	c.Position.SetComponent(e, component.PositionComponent{Lane: lane, Offset: world[0], World: world})
	c.Faction.SetComponent(e, component.FactionComponent{Team: component.TeamDefender})
	c.Projectile.SetComponent(e, component.ProjectileComponent{Damage: damage, Speed: 0, Lane: lane, Direction: 1})
	return e
}

func (h *harness) health(e core.Entity) component.HealthComponent {
	h.t.Helper()
	hp, _ := h.world.Components.Health.GetComponent(e)
	return hp
}
