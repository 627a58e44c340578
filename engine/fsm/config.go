package fsm

// RootConfig represents the top-level config structure
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `toml:"parent,omitempty"`
	OnEnter     []ActionConfig     `toml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `toml:"on_update,omitempty"`
	OnExit      []ActionConfig     `toml:"on_exit,omitempty"`
	Transitions []TransitionConfig `toml:"transitions,omitempty"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger string `toml:"trigger"`         // event name or "Tick"
	Target  string `toml:"target"`          // target state name
	Guard   string `toml:"guard,omitempty"` // registered guard name
}

// ActionConfig represents an action definition
type ActionConfig struct {
	Action string `toml:"action"`
	// Arg is handed to the action function unchanged
	Arg string `toml:"arg,omitempty"`
}
