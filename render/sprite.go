package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/view"
)

// Glyph is how one asset looks on the terminal
type Glyph struct {
	Rune  rune
	Color tcell.Color
}

// Sprite is a terminal presentation instance
// It is visible while active and attached to its stage
type Sprite struct {
	stage    *Stage
	glyph    Glyph
	active   bool
	attached bool
	position mgl64.Vec3
}

var _ view.Instance = (*Sprite)(nil)

func (s *Sprite) Active() bool {
	s.stage.mu.Lock()
	defer s.stage.mu.Unlock()
	return s.active
}

// SetActive shows or hides the sprite, activating attaches it to the stage
func (s *Sprite) SetActive(active bool) {
	s.stage.mu.Lock()
	defer s.stage.mu.Unlock()
	s.active = active
	if active && !s.attached {
		s.stage.sprites[s] = struct{}{}
		s.attached = true
	}
}

// Detach removes the sprite from the stage
func (s *Sprite) Detach() {
	s.stage.mu.Lock()
	defer s.stage.mu.Unlock()
	delete(s.stage.sprites, s)
	s.attached = false
}

// Destroy detaches permanently
func (s *Sprite) Destroy() {
	s.Detach()
	s.stage.mu.Lock()
	s.active = false
	s.stage.mu.Unlock()
}

// SetTransform stores the position; rotation and scale have no terminal meaning
func (s *Sprite) SetTransform(position mgl64.Vec3, _ mgl64.Quat, _ mgl64.Vec3) {
	s.stage.mu.Lock()
	s.position = position
	s.stage.mu.Unlock()
}

// Position returns the last transform position
func (s *Sprite) Position() mgl64.Vec3 {
	s.stage.mu.Lock()
	defer s.stage.mu.Unlock()
	return s.position
}

// template instantiates sprites of one glyph on one stage
type template struct {
	stage *Stage
	glyph Glyph
}

func (t template) Instantiate() view.Instance {
	return &Sprite{stage: t.stage, glyph: t.glyph}
}
