package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// GamePhase is the match lifecycle phase
type GamePhase int

const (
	PhasePreparing GamePhase = iota
	PhasePlaying
	PhaseVictory
	PhaseDefeat
)

// String returns the phase name
func (p GamePhase) String() string {
	switch p {
	case PhasePreparing:
		return "Preparing"
	case PhasePlaying:
		return "Playing"
	case PhaseVictory:
		return "Victory"
	case PhaseDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the match is over
func (p GamePhase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// MarshalText encodes the phase by name for snapshots
func (p GamePhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name as produced by MarshalText
func (p *GamePhase) UnmarshalText(text []byte) error {
	for candidate := PhasePreparing; candidate <= PhaseDefeat; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown game phase %q", text)
}

// GameState centralizes match state with clear ownership boundaries
// The game loop owns phase and time, the director owns waves, combat stages own the counters
type GameState struct {
	// ===== REAL-TIME STATE (lock-free atomics) =====

	KillCount       atomic.Int64
	ReachedEndCount atomic.Int64

	// ===== CLOCK-TICK STATE (mutex protected) =====

	mu sync.RWMutex

	phase         GamePhase
	totalTime     time.Duration
	remainingTime time.Duration
	playTime      time.Duration // accumulated only while Playing

	currentWave  int
	totalWaves   int
	lastWaveTime time.Duration // play time at which the current wave started

	maxReached int
}

// NewGameState creates a state in Preparing with the full duration remaining
func NewGameState(duration time.Duration, totalWaves, maxReached int) *GameState {
	if duration < 0 {
		duration = 0
	}
	return &GameState{
		phase:         PhasePreparing,
		totalTime:     duration,
		remainingTime: duration,
		totalWaves:    totalWaves,
		maxReached:    maxReached,
	}
}

// ===== PHASE ACCESSORS =====

// GetPhase returns the current phase
func (gs *GameState) GetPhase() GamePhase {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.phase
}

// SetPhase changes the phase and returns the previous one
func (gs *GameState) SetPhase(p GamePhase) GamePhase {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	prev := gs.phase
	gs.phase = p
	return prev
}

// ===== TIME ACCESSORS =====

// AdvancePlay counts dt of play, clamping the remaining time at zero
func (gs *GameState) AdvancePlay(dt time.Duration) time.Duration {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.playTime += dt
	gs.remainingTime -= dt
	if gs.remainingTime < 0 {
		gs.remainingTime = 0
	}
	return gs.remainingTime
}

// GetRemainingTime returns the time left in the match
func (gs *GameState) GetRemainingTime() time.Duration {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.remainingTime
}

// GetPlayTime returns the time spent in Playing
func (gs *GameState) GetPlayTime() time.Duration {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.playTime
}

// ===== WAVE ACCESSORS =====

// GetWaveProgress returns the current wave, the wave total and the play time the current wave started at
func (gs *GameState) GetWaveProgress() (current, total int, lastStart time.Duration) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.currentWave, gs.totalWaves, gs.lastWaveTime
}

// StartWave advances to the next wave at play time now
// Returns the new wave number, or false once every wave has started
func (gs *GameState) StartWave(now time.Duration) (int, bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.currentWave >= gs.totalWaves {
		return gs.currentWave, false
	}
	gs.currentWave++
	gs.lastWaveTime = now
	return gs.currentWave, true
}

// ===== SNAPSHOT =====

// GameSnapshot is an immutable copy of the match state
type GameSnapshot struct {
	Phase           GamePhase     `json:"phase"`
	RemainingTime   time.Duration `json:"remaining_ns"`
	TotalTime       time.Duration `json:"total_ns"`
	PlayTime        time.Duration `json:"play_ns"`
	CurrentWave     int           `json:"current_wave"`
	TotalWaves      int           `json:"total_waves"`
	KillCount       int           `json:"kills"`
	ReachedEndCount int           `json:"reached_end"`
	MaxReached      int           `json:"max_reached"`
	Tick            int64         `json:"tick"`
}

// Snapshot copies the state under the read lock
func (gs *GameState) Snapshot() GameSnapshot {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return GameSnapshot{
		Phase:           gs.phase,
		RemainingTime:   gs.remainingTime,
		TotalTime:       gs.totalTime,
		PlayTime:        gs.playTime,
		CurrentWave:     gs.currentWave,
		TotalWaves:      gs.totalWaves,
		KillCount:       int(gs.KillCount.Load()),
		ReachedEndCount: int(gs.ReachedEndCount.Load()),
		MaxReached:      gs.maxReached,
	}
}

// Policy decides how a match ends
// CheckDefeat is evaluated before CheckVictory, and CheckVictory only once time has run out
type Policy interface {
	Name() string
	CheckDefeat(s GameSnapshot) bool
	CheckVictory(s GameSnapshot) bool
}
