package system

import (
	_ "embed"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/engine/fsm"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/parameter"
	"github.com/lixenwraith/lane-siege/rules"
	"github.com/lixenwraith/lane-siege/status"
)

//go:embed phase.toml
var phaseGraph []byte

// GameLoopSystem drives the match phase machine
// Preparing waits for EventGameStart; Playing checks defeat, counts the timer down, then checks victory;
// Victory and Defeat are final so neither the timer nor the predicates run again
type GameLoopSystem struct {
	world   *engine.World
	guard   resourceGuard
	machine *fsm.Machine[*GameLoopSystem]

	phaseOf map[fsm.StateID]engine.GamePhase
	stateOf map[engine.GamePhase]fsm.StateID
	ready   bool

	startRequested bool

	// Tick-scoped context read by machine actions and guards
	state    *engine.GameState
	policy   engine.Policy
	dt       time.Duration
	defeated bool

	statPhase *status.AtomicString
	statTicks *atomic.Int64
}

// NewGameLoopSystem loads the phase graph; the graph is embedded so a failure is a programming error
func NewGameLoopSystem(world *engine.World) engine.System {
	s := &GameLoopSystem{
		world:     world,
		guard:     newResourceGuard(world, "game_loop"),
		machine:   fsm.NewMachine[*GameLoopSystem](),
		phaseOf:   make(map[fsm.StateID]engine.GamePhase),
		stateOf:   make(map[engine.GamePhase]fsm.StateID),
		statPhase: world.Status.Strings.Get("game.phase"),
		statTicks: world.Status.Ints.Get("game.play_ticks"),
	}

	s.machine.RegisterAction("CheckDefeat", (*GameLoopSystem).checkDefeat)
	s.machine.RegisterAction("AdvanceClock", (*GameLoopSystem).advanceClock)
	s.machine.RegisterAction("EnterPhase", (*GameLoopSystem).enterPhase)
	s.machine.RegisterGuard("Defeated", func(s *GameLoopSystem) bool { return s.defeated })
	s.machine.RegisterGuard("Victorious", (*GameLoopSystem).victorious)
	s.machine.OnTransition((*GameLoopSystem).announce)

	if err := s.machine.LoadConfig(phaseGraph); err != nil {
		panic(fmt.Errorf("game loop phase graph: %w", err))
	}
	for _, p := range []engine.GamePhase{engine.PhasePreparing, engine.PhasePlaying, engine.PhaseVictory, engine.PhaseDefeat} {
		id, ok := s.machine.GetStateID(p.String())
		if !ok {
			panic("game loop phase graph lacks state " + p.String())
		}
		s.phaseOf[id] = p
		s.stateOf[p] = id
	}
	return s
}

func (s *GameLoopSystem) Name() string  { return "game_loop" }
func (s *GameLoopSystem) Priority() int { return parameter.PriorityGameLoop }

func (s *GameLoopSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameStart}
}

// HandleEvent latches the start request; it is applied on the next Update, when the state is known to exist
func (s *GameLoopSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameStart {
		s.startRequested = true
	}
}

func (s *GameLoopSystem) Update() {
	gsRes, ok := require[*engine.GameStateResource](&s.guard)
	if !ok || gsRes.State == nil {
		return
	}
	timeRes, ok := require[*engine.TimeResource](&s.guard)
	if !ok {
		return
	}

	s.state = gsRes.State
	s.policy = rules.StandardPolicy{}
	if pr, ok := engine.GetResource[*engine.PolicyResource](s.world.Resources); ok && pr.Policy != nil {
		s.policy = pr.Policy
	}
	s.dt = timeRes.Delta
	s.defeated = false

	if !s.ready {
		// Resume from whatever phase the state already holds
		if err := s.machine.Init(s, s.stateOf[s.state.GetPhase()]); err != nil {
			s.world.Log.Error("game loop init failed", "error", err)
			return
		}
		s.ready = true
	}

	if s.startRequested {
		s.startRequested = false
		if !s.machine.HandleEvent(s, event.EventGameStart) {
			s.world.Log.Debug("start ignored", "phase", s.machine.CurrentName())
		}
	}

	s.machine.Update(s, timeRes.Delta)
}

// Current returns the phase the machine is in
func (s *GameLoopSystem) Current() engine.GamePhase {
	return s.phaseOf[s.machine.Current()]
}

func (s *GameLoopSystem) checkDefeat(_ any) {
	s.defeated = s.policy.CheckDefeat(s.state.Snapshot())
}

func (s *GameLoopSystem) advanceClock(_ any) {
	if s.defeated {
		return
	}
	s.state.AdvancePlay(s.dt)
	s.statTicks.Add(1)
}

func (s *GameLoopSystem) victorious() bool {
	snap := s.state.Snapshot()
	return snap.RemainingTime <= 0 && s.policy.CheckVictory(snap)
}

// enterPhase publishes the phase named by the action argument into the shared state
func (s *GameLoopSystem) enterPhase(args any) {
	name, _ := args.(string)
	id, ok := s.machine.GetStateID(name)
	if !ok {
		return
	}
	phase := s.phaseOf[id]
	s.state.SetPhase(phase)
	s.statPhase.Store(phase.String())
}

// announce runs after the target phase's enter actions
func (s *GameLoopSystem) announce(from, to fsm.StateID) {
	snap := s.state.Snapshot()
	payload := &event.PhaseChangedPayload{
		From:      s.phaseOf[from].String(),
		To:        s.phaseOf[to].String(),
		Terminal:  s.phaseOf[to].Terminal(),
		Wave:      snap.CurrentWave,
		Kills:     snap.KillCount,
		Reached:   snap.ReachedEndCount,
		Remaining: snap.RemainingTime,
		PlayTime:  snap.PlayTime,
	}
	s.world.Log.Info("phase changed",
		"from", payload.From, "to", payload.To,
		"wave", snap.CurrentWave, "kills", snap.KillCount, "reached", snap.ReachedEndCount,
		"remaining", snap.RemainingTime)
	s.world.Emit(event.EventPhaseChanged, payload)
}
