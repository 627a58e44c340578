// Package network publishes read-only match snapshots to websocket spectators
// Nothing received from clients reaches the simulation
package network

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/status"
)

// Hub tracks spectator connections and fans frames out to them
type Hub struct {
	config   *Config
	source   Source
	matchID  string
	reg      *status.Registry
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	// pending counts upgrades holding a slot that are not registered yet
	pending int
	closed  bool

	lastBroadcast time.Time

	statClients *atomic.Int64
	statFrames  *atomic.Int64
	statDropped *atomic.Int64
}

// NewHub creates a hub publishing source; reg may be nil
func NewHub(cfg *Config, source Source, matchID string, reg *status.Registry, log *slog.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		config:  cfg,
		source:  source,
		matchID: matchID,
		reg:     reg,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients:     make(map[*client]struct{}),
		statClients: reg.Ints.Get("net.clients"),
		statFrames:  reg.Ints.Get("net.frames"),
		statDropped: reg.Ints.Get("net.dropped"),
	}
}

// Handler serves /ws for websocket spectators and /snapshot for one-shot JSON reads
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/snapshot", h.serveSnapshot)
	return mux
}

// Serve listens on the configured address until ctx is cancelled
func (h *Hub) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.config.Address)
	if err != nil {
		return err
	}
	return h.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled
func (h *Hub) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.config.WriteTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		h.closeAll()
	}()

	h.log.Info("snapshot hub listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ClientCount returns the number of connected spectators
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Tick publishes a snapshot frame when BroadcastPeriod has passed since the last one
func (h *Hub) Tick(now time.Time) {
	if now.Sub(h.lastBroadcast) < h.config.BroadcastPeriod {
		return
	}
	h.lastBroadcast = now
	if h.ClientCount() == 0 {
		return
	}
	h.Publish(h.snapshotFrame())
}

// Publish sends frame to every client; slow clients whose queue is full are dropped
func (h *Hub) Publish(frame Frame) {
	if frame.MatchID == "" {
		frame.MatchID = h.matchID
	}
	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Warn("frame not encoded", "kind", frame.Kind, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
			h.statFrames.Add(1)
		default:
			h.statDropped.Add(1)
			h.log.Warn("dropping slow spectator", "remote", c.remote)
			h.removeLocked(c)
		}
	}
}

// EventTypes subscribes the hub to phase and wave reports
func (h *Hub) EventTypes() []event.EventType {
	return []event.EventType{event.EventPhaseChanged, event.EventWaveStarted}
}

// HandleEvent forwards phase and wave reports as frames, never blocking the tick
func (h *Hub) HandleEvent(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.PhaseChangedPayload:
		h.Publish(Frame{Kind: FramePhase, From: p.From, To: p.To})
	case *event.WaveStartedPayload:
		h.Publish(Frame{Kind: FrameWave, Wave: p.Wave, TotalWaves: p.TotalWaves})
	}
}

func (h *Hub) snapshotFrame() Frame {
	snap := h.source.Snapshot()
	return Frame{
		Kind:     FrameSnapshot,
		Snapshot: &snap,
		Census:   h.source.Census(),
		Metrics:  h.reg.Snapshot(),
	}
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	frame := h.snapshotFrame()
	frame.MatchID = h.matchID
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		h.log.Warn("snapshot response failed", "error", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	if !h.reserve() {
		http.Error(w, "too many spectators", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.unreserve()
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, h.config.SendQueueSize),
		remote: r.RemoteAddr,
	}

	// Initial state so late joiners do not wait for the next period; queued while nothing else can see c
	if data, err := json.Marshal(h.withMatch(h.snapshotFrame())); err == nil {
		select {
		case c.send <- data:
		default:
		}
	}

	if !h.register(c) {
		conn.Close()
		return
	}
	h.log.Info("spectator connected", "remote", c.remote)

	go c.writePump()
	go c.readPump()
}

// reserve claims a client slot before the upgrade so concurrent upgrades cannot exceed MaxClients
func (h *Hub) reserve() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.clients)+h.pending >= h.config.MaxClients {
		return false
	}
	h.pending++
	return true
}

func (h *Hub) unreserve() {
	h.mu.Lock()
	h.pending--
	h.mu.Unlock()
}

// register turns a reserved slot into a live client; it fails once the hub has shut down
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending--
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.statClients.Store(int64(len(h.clients)))
	return true
}

func (h *Hub) withMatch(f Frame) Frame {
	f.MatchID = h.matchID
	return f
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.statClients.Store(int64(len(h.clients)))
	h.log.Info("spectator disconnected", "remote", c.remote)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}
