package fsm

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/lane-siege/event"
)

type probe struct {
	log   []string
	ready bool
	alarm bool
}

const graph = `
initial = "Idle"

[states.Idle]
on_enter = [{ action = "Note", arg = "enter idle" }]
transitions = [{ trigger = "GameStart", target = "Running" }]

[states.Running]
on_enter = [{ action = "Note", arg = "enter running" }]
on_update = [{ action = "Note", arg = "update running" }]
on_exit = [{ action = "Note", arg = "exit running" }]
transitions = [
  { trigger = "Tick", target = "Lost", guard = "Alarm" },
  { trigger = "Tick", target = "Won", guard = "Ready" },
]

[states.Done]

[states.Won]
parent = "Done"
on_enter = [{ action = "Note", arg = "enter won" }]

[states.Lost]
parent = "Done"
on_enter = [{ action = "Note", arg = "enter lost" }]
`

func newProbeMachine(t *testing.T) *Machine[*probe] {
	t.Helper()
	m := NewMachine[*probe]()
	m.RegisterAction("Note", func(p *probe, args any) {
		p.log = append(p.log, args.(string))
	})
	m.RegisterGuard("Ready", func(p *probe) bool { return p.ready })
	m.RegisterGuard("Alarm", func(p *probe) bool { return p.alarm })
	if err := m.LoadConfig([]byte(graph)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return m
}

func TestMachineLifecycle(t *testing.T) {
	m := newProbeMachine(t)
	p := &probe{}
	if err := m.Init(p, m.InitialStateID); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if m.CurrentName() != "Idle" {
		t.Fatalf("Expected Idle, got %s", m.CurrentName())
	}

	// Tick transitions do not leave Idle
	m.Update(p, time.Second)
	if m.CurrentName() != "Idle" {
		t.Errorf("Expected Idle to wait for an event, got %s", m.CurrentName())
	}

	if !m.HandleEvent(p, event.EventGameStart) {
		t.Fatal("Expected GameStart to transition")
	}
	m.Update(p, 10*time.Millisecond)
	if m.CurrentName() != "Running" || m.TimeInState() != 10*time.Millisecond {
		t.Errorf("Expected Running for 10ms, got %s for %v", m.CurrentName(), m.TimeInState())
	}

	// Both guards pass: the first listed transition wins
	p.ready, p.alarm = true, true
	m.Update(p, 10*time.Millisecond)
	if m.CurrentName() != "Lost" {
		t.Errorf("Expected first matching transition to Lost, got %s", m.CurrentName())
	}
	if !m.IsFinal(m.Current()) {
		t.Error("Expected Lost to be final")
	}

	want := []string{"enter idle", "enter running", "update running", "update running", "exit running", "enter lost"}
	if !slices.Equal(p.log, want) {
		t.Errorf("Unexpected action order:\n got %v\nwant %v", p.log, want)
	}
}

func TestMachineTransitionObserver(t *testing.T) {
	m := newProbeMachine(t)
	var seen []string
	m.OnTransition(func(_ *probe, from, to StateID) {
		seen = append(seen, m.StateName(from)+"->"+m.StateName(to))
	})
	p := &probe{ready: true}
	_ = m.Init(p, m.InitialStateID)
	m.HandleEvent(p, event.EventGameStart)
	m.Update(p, time.Millisecond)

	if !slices.Equal(seen, []string{"Idle->Running", "Running->Won"}) {
		t.Errorf("Unexpected transitions %v", seen)
	}
}

func TestLoadConfigRejectsUnknownReferences(t *testing.T) {
	cases := map[string]string{
		"guard":   `initial = "A"` + "\n[states.A]\ntransitions = [{ trigger = \"Tick\", target = \"A\", guard = \"Nope\" }]",
		"target":  `initial = "A"` + "\n[states.A]\ntransitions = [{ trigger = \"Tick\", target = \"B\" }]",
		"event":   `initial = "A"` + "\n[states.A]\ntransitions = [{ trigger = \"Explode\", target = \"A\" }]",
		"action":  `initial = "A"` + "\n[states.A]\non_enter = [{ action = \"Nope\" }]",
		"initial": `initial = "Z"` + "\n[states.A]",
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			m := NewMachine[*probe]()
			err := m.LoadConfig([]byte(cfg))
			if err == nil {
				t.Fatal("Expected load error")
			}
			if name != "initial" && !strings.Contains(err.Error(), "state 'A'") {
				t.Errorf("Expected error to name the state, got %v", err)
			}
		})
	}
}
