package core

// Entity is an opaque handle identifying one simulated object's component set
// Handles are allocated from a monotonic counter and never reused within a World
type Entity uint64

// NoEntity is the zero handle, never allocated
const NoEntity Entity = 0

// Valid reports whether the handle could have been allocated by a World
func (e Entity) Valid() bool {
	return e != NoEntity
}
