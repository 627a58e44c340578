package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/view"
)

// TransformComponent is the simulation-side transform mirrored into presentation instances
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform returns an identity transform at pos
func NewTransform(pos mgl64.Vec3) TransformComponent {
	return TransformComponent{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// ViewBindingComponent links an entity to at most one live presentation instance
type ViewBindingComponent struct {
	AssetPath string
	// Instance is nil until acquired, and stays nil if the asset cannot be resolved
	Instance view.Instance
}

// PrefabPathComponent records the prefab an entity was built from
type PrefabPathComponent struct {
	Path string
}

// PendingReleaseComponent marks an entity whose simulation data is gone and whose view still needs releasing
type PendingReleaseComponent struct{}
