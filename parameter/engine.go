package parameter

import "time"

// Game Loop Timing
const (
	// TickInterval is the default real-time interval between simulation ticks (~20 Hz)
	TickInterval = 50 * time.Millisecond

	// MaxTickDelta caps the delta handed to a single tick after a stall
	MaxTickDelta = 250 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
