package event

import (
	"time"

	"github.com/lixenwraith/lane-siege/core"
)

// SpawnRequestPayload asks for Count actors of ActorType
// Delay is the gap between consecutive actors of this request
type SpawnRequestPayload struct {
	Wave      int
	ActorType string
	Count     int
	Delay     time.Duration
	// Lane pins every actor to one lane, -1 lets the spawner rotate lanes
	Lane int
	// Offset overrides the spawn offset when HasOffset is set, used for placing defenders
	Offset    float64
	HasOffset bool
}

// PhaseChangedPayload carries the transition and the state right after it
type PhaseChangedPayload struct {
	From string
	To   string
	// Terminal is true for Victory and Defeat
	Terminal  bool
	Wave      int
	Kills     int
	Reached   int
	Remaining time.Duration
	PlayTime  time.Duration
}

// WaveStartedPayload reports the new wave number
type WaveStartedPayload struct {
	Wave       int
	TotalWaves int
	Entries    int
}

// KillPayload identifies the killed actor
type KillPayload struct {
	Entity    core.Entity
	ActorType string
	Lane      int
}

// ReachedEndPayload identifies the attacker that got through
type ReachedEndPayload struct {
	Entity    core.Entity
	ActorType string
	Lane      int
}
