package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/lane-siege/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// OnTransition sets the observer for completed transitions
func (m *Machine[T]) OnTransition(fn func(ctx T, from, to StateID)) {
	m.onTransition = fn
}

// Init enters initialID, running OnEnter for the chain from Root down
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	if len(node.Path) == 0 {
		return fmt.Errorf("state '%s' has no compiled path", node.Name)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		m.runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update runs the active leaf's OnUpdate actions, then evaluates tick transitions bubbling up to Root
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}
	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	m.runActions(ctx, leaf.OnUpdate)

	m.fire(ctx, event.EventNone)
}

// HandleEvent routes an external event through the active path, leaf first
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == event.EventNone {
		return false
	}
	return m.fire(ctx, eventType)
}

// fire takes the first transition on the active path matching eventType whose guard passes
func (m *Machine[T]) fire(ctx T, eventType event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition exits up to the lowest common ancestor and enters down to target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	targetPath := targetNode.Path
	for i := 0; i < min(len(m.activePath), len(targetPath)); i++ {
		if m.activePath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	for i := len(m.activePath) - 1; i > lcaIndex; i-- {
		m.runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}

	from := m.activeStateID
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lcaIndex + 1; i < len(targetPath); i++ {
		m.runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}

	if m.onTransition != nil {
		m.onTransition(ctx, from, targetID)
	}
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		m.runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx, m.InitialStateID)
}

func (m *Machine[T]) runActions(ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active leaf state name
func (m *Machine[T]) CurrentName() string {
	return m.StateName(m.activeStateID)
}

// TimeInState returns time accumulated by Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
