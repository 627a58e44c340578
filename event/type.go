package event

// EventType identifies a game event
type EventType int

const (
	EventNone EventType = iota

	// EventGameStart requests the Preparing -> Playing transition
	// Trigger: CLI input, tests | Consumer: GameLoopSystem | Payload: nil
	EventGameStart

	// EventSpawnRequest asks the spawn subsystem to create actors
	// Trigger: WaveDirectorSystem, Simulation.RequestSpawn | Consumer: SpawnSystem | Payload: *SpawnRequestPayload
	EventSpawnRequest

	// EventPhaseChanged reports a game loop transition after the new phase's enter hook ran
	// Trigger: GameLoopSystem | Consumer: external hooks | Payload: *PhaseChangedPayload
	EventPhaseChanged

	// EventWaveStarted reports a new wave
	// Trigger: WaveDirectorSystem | Consumer: external hooks | Payload: *WaveStartedPayload
	EventWaveStarted

	// EventKill reports an actor killed by combat
	// Trigger: CombatSystem, CollisionSystem | Consumer: external hooks | Payload: *KillPayload
	EventKill

	// EventReachedEnd reports an attacker that walked off the defended end of its lane
	// Trigger: MovementSystem | Consumer: external hooks | Payload: *ReachedEndPayload
	EventReachedEnd
)

var eventNames = map[EventType]string{
	EventNone:         "None",
	EventGameStart:    "GameStart",
	EventSpawnRequest: "SpawnRequest",
	EventPhaseChanged: "PhaseChanged",
	EventWaveStarted:  "WaveStarted",
	EventKill:         "Kill",
	EventReachedEnd:   "ReachedEnd",
}

// String returns the event name
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "Unknown"
}

// GameEvent is a single routed event
type GameEvent struct {
	Type    EventType
	Payload any
	// Tick is the simulation tick the event was emitted on
	Tick int64
}

// TypeByName resolves an event name as returned by String
func TypeByName(name string) (EventType, bool) {
	for t, n := range eventNames {
		if n == name {
			return t, true
		}
	}
	return EventNone, false
}
