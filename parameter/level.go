package parameter

import "time"

// Level defaults applied when a level omits a value
const (
	DefaultRows         = 5
	DefaultColumns      = 9
	DefaultCellSize     = 1.0
	DefaultDuration     = 180 * time.Second
	DefaultWaveInterval = 30 * time.Second
	DefaultMaxReached   = 1
)
