// Package view owns recyclable presentation objects and the pool that hands them out
// The simulation never reads presentation state back; data flows simulation -> instance only
package view

import "github.com/go-gl/mathgl/mgl64"

// Instance is a renderable presentation object
type Instance interface {
	// Active reports whether the instance is in use and visible
	Active() bool
	SetActive(active bool)
	// Detach removes the instance from any scene or parent context
	Detach()
	// Destroy discards the instance permanently, it must not be used afterwards
	Destroy()
	SetTransform(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3)
}

// Template produces fresh instances for one asset path
type Template interface {
	Instantiate() Instance
}

// Resolver maps an asset path to its template
type Resolver interface {
	Resolve(path string) (Template, bool)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(path string) (Template, bool)

// Resolve calls f(path)
func (f ResolverFunc) Resolve(path string) (Template, bool) {
	return f(path)
}
