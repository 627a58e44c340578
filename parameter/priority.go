package parameter

// System execution priorities (lower runs first)
// The world flushes its command queue after every system
const (
	PriorityGameLoop     = 10
	PriorityWaveDirector = 20
	PrioritySpawn        = 30
	PriorityMovement     = 40
	PriorityLaneIndex    = 50 // After movement, positions are final for the tick
	PriorityCombat       = 60 // Reads the lane index for target-ahead checks
	PriorityCollision    = 70
	PriorityViewSync     = 80 // After the combat flush
	PriorityViewCleanup  = 90 // Strictly after the flush that destroyed simulation data
)
