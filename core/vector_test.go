package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPlanarDistSq(t *testing.T) {
	tests := []struct {
		name string
		a, b mgl64.Vec3
		want float64
	}{
		{"same point", mgl64.Vec3{1, 2, 0}, mgl64.Vec3{1, 2, 0}, 0},
		{"along lane inside radius", mgl64.Vec3{4, 2.5, 0}, mgl64.Vec3{4.3, 2.5, 0}, 0.09},
		{"across lanes", mgl64.Vec3{4, 2.5, 0}, mgl64.Vec3{4, 3.5, 0}, 1},
		{"depth ignored", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 4, 9}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanarDistSq(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if PlanarDistSq(mgl64.Vec3{4, 2.5, 0}, mgl64.Vec3{4.3, 2.5, 0}) >= 0.25 {
		t.Error("Expected 0.09 inside the 0.5 collision radius")
	}
}

func TestPlanarSegmentDistSq(t *testing.T) {
	a := mgl64.Vec3{2, 2.5, 0}
	b := mgl64.Vec3{3.5, 2.5, 0}
	tests := []struct {
		name string
		a, b mgl64.Vec3
		p    mgl64.Vec3
		want float64
	}{
		{"point between ends", a, b, mgl64.Vec3{2.75, 2.5, 0}, 0},
		{"beyond far end", a, b, mgl64.Vec3{4, 2.5, 0}, 0.25},
		{"before near end", a, b, mgl64.Vec3{1.5, 2.5, 0}, 0.25},
		{"off axis", a, b, mgl64.Vec3{3, 3.5, 0}, 1},
		{"degenerate segment", a, a, mgl64.Vec3{2.3, 2.5, 0}, 0.09},
		{"reversed direction", b, a, mgl64.Vec3{2.75, 2.5, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanarSegmentDistSq(tt.a, tt.b, tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
