package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/lane-siege/event"
)

// Hook records the outcome when a match reaches a terminal phase
// It subscribes to phase changes and writes at most once per match
type Hook struct {
	ledger     *Ledger
	matchID    string
	level      string
	totalWaves int
	timeout    time.Duration
	log        *slog.Logger

	done bool
	last Outcome
}

// NewHook creates a hook with a fresh match id
func NewHook(l *Ledger, levelName string, totalWaves int, log *slog.Logger) *Hook {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hook{
		ledger:     l,
		matchID:    uuid.NewString(),
		level:      levelName,
		totalWaves: totalWaves,
		timeout:    2 * time.Second,
		log:        log,
	}
}

// MatchID identifies the match this hook records
func (h *Hook) MatchID() string { return h.matchID }

// Recorded returns the stored outcome once the match ended
func (h *Hook) Recorded() (Outcome, bool) { return h.last, h.done }

func (h *Hook) EventTypes() []event.EventType {
	return []event.EventType{event.EventPhaseChanged}
}

func (h *Hook) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PhaseChangedPayload)
	if !ok || p == nil || !p.Terminal || h.done {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	o, err := h.ledger.Record(ctx, Outcome{
		MatchID:    h.matchID,
		Level:      h.level,
		Phase:      p.To,
		Kills:      p.Kills,
		Reached:    p.Reached,
		Wave:       p.Wave,
		TotalWaves: h.totalWaves,
		Played:     p.PlayTime,
	})
	if err != nil {
		h.log.Warn("outcome not recorded", "match", h.matchID, "error", err)
		return
	}
	h.done = true
	h.last = o
	h.log.Info("outcome recorded", "match", h.matchID, "phase", o.Phase, "kills", o.Kills, "reached", o.Reached)
}
