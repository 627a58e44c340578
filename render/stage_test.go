package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/view"
)

func newTestStage(t *testing.T) (*Stage, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(60, 16)
	t.Cleanup(screen.Fini)
	return NewStage(screen, 3, 9, 1), screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func lineAt(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := range width {
		b.WriteRune(runeAt(screen, x, y))
	}
	return b.String()
}

func TestSpriteLifecycle(t *testing.T) {
	stage, _ := newTestStage(t)
	atlas := NewAtlas(stage)
	tmpl, ok := atlas.Resolve("actors/shooter")
	if !ok {
		t.Fatal("Expected shooter glyph resolved")
	}

	inst := tmpl.Instantiate()
	if inst.Active() || stage.SpriteCount() != 0 {
		t.Fatal("Expected fresh sprite inactive and detached")
	}
	inst.SetActive(true)
	if stage.SpriteCount() != 1 {
		t.Errorf("Expected activation to attach, got %d sprites", stage.SpriteCount())
	}
	inst.SetActive(false)
	inst.Detach()
	if stage.SpriteCount() != 0 || inst.Active() {
		t.Error("Expected detach to remove the sprite")
	}
	inst.SetActive(true)
	inst.Destroy()
	if stage.SpriteCount() != 0 {
		t.Error("Expected destroyed sprite detached")
	}
}

func TestAtlasFallback(t *testing.T) {
	stage, _ := newTestStage(t)
	atlas := NewAtlas(stage)
	tmpl, ok := atlas.Resolve("actors/zombie")
	if !ok {
		t.Fatal("Expected actor fallback glyph")
	}
	if sp := tmpl.Instantiate().(*Sprite); sp.glyph.Rune != 'z' {
		t.Errorf("Expected first letter glyph, got %q", sp.glyph.Rune)
	}
	if _, ok := atlas.Resolve("fx/unknown"); ok {
		t.Error("Expected unknown effect unresolved")
	}
}

func TestStageDrawsSpritesAndHUD(t *testing.T) {
	stage, screen := newTestStage(t)
	pool := view.NewPool(NewAtlas(stage), nil, nil)

	walker := pool.Acquire("actors/walker")
	walker.SetTransform(mgl64.Vec3{4.5, 1.5, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})
	shooter := pool.Acquire("actors/shooter")
	shooter.SetTransform(mgl64.Vec3{0.5, 0.5, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})

	snap := engine.GameSnapshot{Phase: engine.PhasePlaying, CurrentWave: 2, TotalWaves: 3, KillCount: 1234, MaxReached: 1, RemainingTime: 83*time.Second + 400*time.Millisecond}
	stage.Draw(snap)

	wx, wy := stage.Cell(4.5, 1.5)
	if r := runeAt(screen, wx, wy); r != 'w' {
		t.Errorf("Expected walker at (%d,%d), got %q", wx, wy, r)
	}
	sx, sy := stage.Cell(0.5, 0.5)
	if r := runeAt(screen, sx, sy); r != 'P' {
		t.Errorf("Expected shooter at (%d,%d), got %q", sx, sy, r)
	}

	hud := lineAt(screen, 0, 60)
	for _, want := range []string{"Playing", "wave 2/3", "kills 1,234", "1m23s left"} {
		if !strings.Contains(hud, want) {
			t.Errorf("Expected HUD to contain %q, got %q", want, hud)
		}
	}

	// Released sprites are no longer drawn
	pool.Release("actors/walker", walker)
	stage.Draw(snap)
	if r := runeAt(screen, wx, wy); r == 'w' {
		t.Error("Expected released walker not drawn")
	}
}

func TestStageBannerOnMatchEnd(t *testing.T) {
	stage, screen := newTestStage(t)
	stage.Draw(engine.GameSnapshot{Phase: engine.PhaseDefeat})
	if line := lineAt(screen, boardY+3*laneSpacing, 60); !strings.Contains(line, "Defeat - press q to quit") {
		t.Errorf("Expected defeat banner, got %q", line)
	}
}
