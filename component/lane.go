package component

import "github.com/go-gl/mathgl/mgl64"

// PositionComponent places an entity on a lane
// Offset runs along the lane axis from 0 (defended end) to the lane length (spawn end)
type PositionComponent struct {
	Lane   int
	Offset float64
	World  mgl64.Vec3
}

// MobileComponent marks an entity that advances along its lane every tick
type MobileComponent struct {
	// Speed in world units per second, 0 for stationary actors
	Speed float64
}

// Team identifies which side of the lane an actor fights for
type Team uint8

const (
	TeamNone Team = iota
	TeamDefender
	TeamAttacker
)

// String returns the team name
func (t Team) String() string {
	switch t {
	case TeamDefender:
		return "defender"
	case TeamAttacker:
		return "attacker"
	default:
		return "none"
	}
}

// Direction returns the lane travel direction for mobile actors of this team
func (t Team) Direction() float64 {
	if t == TeamAttacker {
		return -1
	}
	return 1
}

// Hostile reports whether the two teams fight each other
func (t Team) Hostile(other Team) bool {
	return t != TeamNone && other != TeamNone && t != other
}

// FactionComponent tags an entity with its team
type FactionComponent struct {
	Team Team
}

// ActorComponent records the stat table row an entity was built from
type ActorComponent struct {
	Type string
}
