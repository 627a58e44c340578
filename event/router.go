package event

// Handler receives routed events
type Handler interface {
	HandleEvent(ev GameEvent)
	EventTypes() []EventType
}

// HandlerFunc adapts a function subscribed to fixed event types
type HandlerFunc struct {
	Types []EventType
	Fn    func(ev GameEvent)
}

// HandleEvent calls Fn
func (h HandlerFunc) HandleEvent(ev GameEvent) {
	h.Fn(ev)
}

// EventTypes returns the subscribed types
func (h HandlerFunc) EventTypes() []EventType {
	return h.Types
}

// Router dispatches events to handlers on the tick goroutine
// Handlers for one type run in registration order
type Router struct {
	handlers map[EventType][]Handler
	inbox    *EventQueue
}

// NewRouter creates a router draining inbox
func NewRouter(inbox *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		inbox:    inbox,
	}
}

// Register subscribes handler to each of its declared types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch delivers ev synchronously
func (r *Router) Dispatch(ev GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
}

// DispatchAll consumes the inbox and delivers each event in FIFO order
// Returns the number of events consumed
func (r *Router) DispatchAll() int {
	if r.inbox == nil {
		return 0
	}
	events := r.inbox.Consume()
	for _, ev := range events {
		r.Dispatch(ev)
	}
	return len(events)
}

// HandlerCount returns how many handlers are subscribed to t
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
