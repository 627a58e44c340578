package core

import "github.com/go-gl/mathgl/mgl64"

// PlanarDistSq returns the squared distance between a and b on the board plane (X, Y)
func PlanarDistSq(a, b mgl64.Vec3) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

// PlanarSegmentDistSq returns the squared board-plane distance from p to the segment a-b
// A degenerate segment reduces to PlanarDistSq(a, p)
func PlanarSegmentDistSq(a, b, p mgl64.Vec3) float64 {
	abx, aby := b[0]-a[0], b[1]-a[1]
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return PlanarDistSq(a, p)
	}
	t := ((p[0]-a[0])*abx + (p[1]-a[1])*aby) / lenSq
	t = mgl64.Clamp(t, 0, 1)
	closest := mgl64.Vec3{a[0] + t*abx, a[1] + t*aby, 0}
	return PlanarDistSq(closest, p)
}
