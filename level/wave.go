package level

import (
	"log/slog"
	"time"
)

// WaveEntry is one row of the wave composition table
type WaveEntry struct {
	WaveNumber int
	ActorType  string
	Count      int
	SpawnDelay time.Duration
}

// WaveTable indexes wave entries by wave number, preserving table order within a wave
type WaveTable struct {
	byWave  map[int][]WaveEntry
	maxWave int
}

// NewWaveTable keeps every entry that names a known actor with a positive wave and count
// Rejected entries are logged and skipped, the rest still load
func NewWaveTable(entries []WaveEntry, actors map[string]ActorStats, log *slog.Logger) *WaveTable {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	t := &WaveTable{byWave: make(map[int][]WaveEntry)}

	for _, e := range entries {
		var reason string
		switch {
		case e.WaveNumber <= 0:
			reason = "wave number must be positive"
		case e.Count <= 0:
			reason = "count must be positive"
		case e.SpawnDelay < 0:
			reason = "negative spawn delay"
		default:
			if _, ok := actors[e.ActorType]; !ok {
				reason = "unknown actor type"
			}
		}
		if reason != "" {
			log.Warn("skipping wave entry", "wave", e.WaveNumber, "actor", e.ActorType, "reason", reason)
			continue
		}

		t.byWave[e.WaveNumber] = append(t.byWave[e.WaveNumber], e)
		if e.WaveNumber > t.maxWave {
			t.maxWave = e.WaveNumber
		}
	}
	return t
}

// Entries returns the rows for wave, nil if the wave is empty
func (t *WaveTable) Entries(wave int) []WaveEntry {
	if t == nil {
		return nil
	}
	return t.byWave[wave]
}

// MaxWave returns the highest wave number with at least one entry
func (t *WaveTable) MaxWave() int {
	if t == nil {
		return 0
	}
	return t.maxWave
}

// Len returns the number of accepted entries
func (t *WaveTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, rows := range t.byWave {
		n += len(rows)
	}
	return n
}
