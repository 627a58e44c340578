// Package ledger persists match outcomes in a local SQLite database
// Only final results are stored, never simulation state
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go driver
)

// ErrClosed is returned by operations on a closed ledger
var ErrClosed = errors.New("ledger closed")

// Outcome is one finished match
type Outcome struct {
	ID         string
	MatchID    string
	Level      string
	Phase      string
	Kills      int
	Reached    int
	Wave       int
	TotalWaves int
	Played     time.Duration
	FinishedAt time.Time
}

// Ledger is an append-only outcome store, safe for concurrent use
type Ledger struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open creates or opens the database at path, creating parent directories as needed
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	// Single writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS outcomes (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			level TEXT NOT NULL,
			phase TEXT NOT NULL,
			kills INTEGER NOT NULL,
			reached INTEGER NOT NULL,
			wave INTEGER NOT NULL,
			total_waves INTEGER NOT NULL,
			played_ms INTEGER NOT NULL,
			finished_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_level ON outcomes(level);`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_finished ON outcomes(finished_at);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Record stores o, filling ID and FinishedAt when unset, and returns the stored row
func (l *Ledger) Record(ctx context.Context, o Outcome) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return Outcome{}, ErrClosed
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.FinishedAt.IsZero() {
		o.FinishedAt = time.Now()
	}
	o.FinishedAt = o.FinishedAt.UTC()

	query := `
		INSERT INTO outcomes (id, match_id, level, phase, kills, reached, wave, total_waves, played_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, query,
		o.ID, o.MatchID, o.Level, o.Phase, o.Kills, o.Reached, o.Wave, o.TotalWaves,
		o.Played.Milliseconds(), o.FinishedAt,
	)
	if err != nil {
		return Outcome{}, fmt.Errorf("record outcome: %w", err)
	}
	return o, nil
}

// Recent returns up to limit outcomes, newest first; an empty level matches every level
func (l *Ledger) Recent(ctx context.Context, levelName string, limit int) ([]Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, match_id, level, phase, kills, reached, wave, total_waves, played_ms, finished_at
		FROM outcomes WHERE (? = '' OR level = ?) ORDER BY finished_at DESC, rowid DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, levelName, levelName, limit)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		var playedMs int64
		if err := rows.Scan(&o.ID, &o.MatchID, &o.Level, &o.Phase, &o.Kills, &o.Reached,
			&o.Wave, &o.TotalWaves, &playedMs, &o.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Played = time.Duration(playedMs) * time.Millisecond
		out = append(out, o)
	}
	return out, rows.Err()
}

// Close releases the database, later calls return ErrClosed
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	return l.db.Close()
}
