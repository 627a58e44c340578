package network

import (
	"github.com/lixenwraith/lane-siege/engine"
)

// FrameKind tags a frame on the wire
type FrameKind string

const (
	FrameSnapshot FrameKind = "snapshot"
	FramePhase    FrameKind = "phase"
	FrameWave     FrameKind = "wave"
)

// Frame is one JSON message sent to spectators
type Frame struct {
	Kind     FrameKind            `json:"kind"`
	MatchID  string               `json:"match_id,omitempty"`
	Snapshot *engine.GameSnapshot `json:"snapshot,omitempty"`
	Census   map[string]int       `json:"census,omitempty"`
	Metrics  map[string]any       `json:"metrics,omitempty"`

	// Phase frames
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// Wave frames
	Wave       int `json:"wave,omitempty"`
	TotalWaves int `json:"total_waves,omitempty"`
}

// Source is the read-only view of a match the hub publishes
type Source interface {
	Snapshot() engine.GameSnapshot
	Census() map[string]int
}
