package render

import (
	"strings"

	"github.com/lixenwraith/lane-siege/view"
)

// Atlas resolves asset paths to glyphs drawn on a stage
type Atlas struct {
	stage  *Stage
	glyphs map[string]Glyph
}

// NewAtlas creates an atlas with the built-in glyph set
func NewAtlas(stage *Stage) *Atlas {
	a := &Atlas{stage: stage, glyphs: make(map[string]Glyph)}
	a.Register("actors/walker", Glyph{Rune: 'w', Color: RgbAttacker})
	a.Register("actors/brute", Glyph{Rune: 'B', Color: RgbAttacker})
	a.Register("actors/shooter", Glyph{Rune: 'P', Color: RgbDefender})
	a.Register("actors/wall", Glyph{Rune: '#', Color: RgbDefender})
	a.Register("fx/pea", Glyph{Rune: '•', Color: RgbProjectile})
	return a
}

// Register maps path to g, replacing any earlier glyph
func (a *Atlas) Register(path string, g Glyph) {
	a.glyphs[path] = g
}

// Resolve implements view.Resolver
// Unregistered paths under actors/ fall back to the first letter of the asset name
func (a *Atlas) Resolve(path string) (view.Template, bool) {
	if g, ok := a.glyphs[path]; ok {
		return template{stage: a.stage, glyph: g}, true
	}
	if name, ok := strings.CutPrefix(path, "actors/"); ok && name != "" {
		return template{stage: a.stage, glyph: Glyph{Rune: rune(name[0]), Color: RgbNeutral}}, true
	}
	return nil, false
}
