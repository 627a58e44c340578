package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/lane-siege/event"
)

func openTemp(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "nested", "outcomes.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, lvl := range []string{"meadow", "swamp", "meadow"} {
		if _, err := l.Record(ctx, Outcome{
			MatchID: "m", Level: lvl, Phase: "Victory", Kills: i, Played: 90 * time.Second,
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := l.Recent(ctx, "", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 || all[0].Kills != 2 {
		t.Fatalf("Expected 3 outcomes newest first, got %+v", all)
	}
	if all[0].ID == "" || all[0].Played != 90*time.Second || !all[0].FinishedAt.Equal(base.Add(2*time.Minute)) {
		t.Errorf("Unexpected stored row %+v", all[0])
	}

	meadow, err := l.Recent(ctx, "meadow", 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(meadow) != 1 || meadow[0].Level != "meadow" || meadow[0].Kills != 2 {
		t.Errorf("Expected newest meadow outcome, got %+v", meadow)
	}
}

func TestClosedLedger(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "outcomes.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := l.Record(context.Background(), Outcome{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Record, got %v", err)
	}
	if _, err := l.Recent(context.Background(), "", 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Recent, got %v", err)
	}
	if err := l.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from second Close, got %v", err)
	}
}

func TestHookRecordsTerminalPhaseOnce(t *testing.T) {
	l := openTemp(t)
	h := NewHook(l, "meadow", 3, nil)

	h.HandleEvent(event.GameEvent{Type: event.EventPhaseChanged, Payload: &event.PhaseChangedPayload{From: "Preparing", To: "Playing"}})
	if _, ok := h.Recorded(); ok {
		t.Fatal("Expected nothing recorded for a non-terminal phase")
	}

	defeat := &event.PhaseChangedPayload{From: "Playing", To: "Defeat", Terminal: true, Wave: 2, Kills: 7, Reached: 1, PlayTime: 42 * time.Second}
	h.HandleEvent(event.GameEvent{Type: event.EventPhaseChanged, Payload: defeat})
	h.HandleEvent(event.GameEvent{Type: event.EventPhaseChanged, Payload: defeat})

	o, ok := h.Recorded()
	if !ok || o.MatchID != h.MatchID() || o.Phase != "Defeat" || o.TotalWaves != 3 {
		t.Fatalf("Unexpected recorded outcome %+v", o)
	}
	rows, err := l.Recent(context.Background(), "meadow", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 1 || rows[0].Kills != 7 || rows[0].Played != 42*time.Second {
		t.Errorf("Expected a single stored defeat, got %+v", rows)
	}
}
